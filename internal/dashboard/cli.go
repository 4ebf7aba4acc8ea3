package dashboard

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"

	"lema/pkg/apiclient"
)

// postsPageSize matches the server's default pagination ceiling.
const postsPageSize = 100

// ErrUsage is returned for unknown commands or bad arguments.
var ErrUsage = errors.New("usage error")

// ErrInvalidPost is returned when the post form fails its limits.
var ErrInvalidPost = errors.New("invalid post")

const usageText = `usage: dashboard <command> [flags]

commands:
  users [-page N] [-limit N]           list users (restores the last page)
  back                                 return to the last users page
  user <userId>                        show one user
  posts <userId> [-page N] [-limit N]  show a user's posts
  new-post <userId> -title T -body B   publish a post
  delete-post <postId> [-yes]          delete a post
`

// App runs dashboard commands against the API.
type App struct {
	Client   *apiclient.Client
	Memory   *PageMemory
	Notifier *Notifier
	Out      io.Writer
	Err      io.Writer
	In       io.Reader
	Width    int
}

// Run executes one command.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(a.Err, usageText)
		return ErrUsage
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "users":
		return a.users(ctx, rest)
	case "back":
		return a.showUsers(ctx, a.Memory.State.UsersPage, a.rememberedLimit())
	case "user":
		return a.user(ctx, rest)
	case "posts":
		return a.posts(ctx, rest)
	case "new-post":
		return a.newPost(ctx, rest)
	case "delete-post":
		return a.deletePost(ctx, rest)
	case "help", "-h", "--help":
		fmt.Fprint(a.Out, usageText)
		return nil
	default:
		fmt.Fprintf(a.Err, "unknown command %q\n\n%s", cmd, usageText)
		return ErrUsage
	}
}

func (a *App) rememberedLimit() int {
	if a.Memory.State.UsersLimit > 0 {
		return a.Memory.State.UsersLimit
	}
	return 4
}

func (a *App) users(ctx context.Context, args []string) error {
	fs := a.flagSet("users")
	page := fs.Int("page", 0, "page number (default: last viewed)")
	limit := fs.Int("limit", 0, "users per page")
	if _, err := parseInterspersed(fs, args); err != nil {
		return err
	}
	if *page <= 0 {
		*page = a.Memory.State.UsersPage
	}
	if *limit <= 0 {
		*limit = a.rememberedLimit()
	}
	return a.showUsers(ctx, *page, *limit)
}

func (a *App) showUsers(ctx context.Context, page, limit int) error {
	result, err := a.Client.ListUsers(ctx, page, limit)
	if err != nil {
		a.Notifier.Error(apiclient.ErrorMessage(err))
		return err
	}
	if err := RenderUsers(a.Out, result, a.Width); err != nil {
		return err
	}
	return a.Memory.RememberUsersPage(page, limit)
}

func (a *App) user(ctx context.Context, args []string) error {
	fs := a.flagSet("user")
	pos, err := parseInterspersed(fs, args)
	if err != nil {
		return err
	}
	if len(pos) != 1 {
		return a.usage("user <userId>")
	}

	u, err := a.Client.GetUser(ctx, pos[0])
	if err != nil {
		a.Notifier.Error(apiclient.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(a.Out, "%s\n%s\n", u.Name, u.Email)
	return nil
}

func (a *App) posts(ctx context.Context, args []string) error {
	fs := a.flagSet("posts")
	pageNum := fs.Int("page", 1, "page number")
	limit := fs.Int("limit", postsPageSize, "posts per page")
	pos, err := parseInterspersed(fs, args)
	if err != nil {
		return err
	}
	if len(pos) != 1 {
		return a.usage("posts <userId>")
	}
	userID := pos[0]

	u, err := a.Client.GetUser(ctx, userID)
	if err != nil {
		a.Notifier.Error(apiclient.ErrorMessage(err))
		return err
	}
	if *pageNum < 1 {
		*pageNum = 1
	}
	if *limit < 1 {
		*limit = postsPageSize
	}
	page, err := a.Client.ListUserPosts(ctx, userID, *pageNum, *limit)
	if err != nil {
		a.Notifier.Error(apiclient.ErrorMessage(err))
		return err
	}
	if err := RenderPosts(a.Out, u, page, a.Width); err != nil {
		return err
	}
	return a.Memory.RememberUser(userID)
}

func (a *App) newPost(ctx context.Context, args []string) error {
	fs := a.flagSet("new-post")
	title := fs.String("title", "", "post title")
	body := fs.String("body", "", "post content")
	pos, err := parseInterspersed(fs, args)
	if err != nil {
		return err
	}
	if len(pos) != 1 {
		return a.usage("new-post <userId> -title T -body B")
	}

	in := apiclient.NewPost{UserID: pos[0], Title: *title, Body: *body}
	if errs := in.Validate(); len(errs) > 0 {
		fields := make([]string, 0, len(errs))
		for f := range errs {
			fields = append(fields, f)
		}
		sort.Strings(fields)
		lines := make([]string, 0, len(fields))
		for _, f := range fields {
			lines = append(lines, errs[f])
		}
		a.Notifier.Error(strings.Join(lines, "\n"))
		return ErrInvalidPost
	}

	post, err := a.Client.CreatePost(ctx, in)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.Out, post.ID)
	return nil
}

func (a *App) deletePost(ctx context.Context, args []string) error {
	fs := a.flagSet("delete-post")
	yes := fs.Bool("yes", false, "skip confirmation")
	pos, err := parseInterspersed(fs, args)
	if err != nil {
		return err
	}
	if len(pos) != 1 {
		return a.usage("delete-post <postId> [-yes]")
	}

	if !*yes && !a.confirm("Are you sure you want to delete this post? This action cannot be undone. [y/N] ") {
		fmt.Fprintln(a.Out, "Cancelled")
		return nil
	}

	deleted, err := a.Client.DeletePost(ctx, pos[0])
	if err != nil {
		return err
	}
	if !deleted {
		fmt.Fprintln(a.Out, "Nothing to delete")
	}
	return nil
}

func (a *App) confirm(prompt string) bool {
	fmt.Fprint(a.Out, prompt)
	if a.In == nil {
		return false
	}
	line, err := bufio.NewReader(a.In).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func (a *App) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.Err)
	return fs
}

func (a *App) usage(synopsis string) error {
	fmt.Fprintf(a.Err, "usage: dashboard %s\n", synopsis)
	return ErrUsage
}

// parseInterspersed parses flags that may appear before or after positional arguments.
func parseInterspersed(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUsage, err)
		}
		args = fs.Args()
		if len(args) == 0 {
			return positional, nil
		}
		positional = append(positional, args[0])
		args = args[1:]
	}
}
