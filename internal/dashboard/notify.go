package dashboard

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// Notifier prints success and error feedback, one message per line.
type Notifier struct {
	mu  sync.Mutex
	out io.Writer
}

// NewNotifier returns a Notifier writing to out (normally stderr).
func NewNotifier(out io.Writer) *Notifier {
	return &Notifier{out: out}
}

func (n *Notifier) Success(message string) {
	n.write("✓", message)
}

func (n *Notifier) Error(message string) {
	n.write("✗", message)
}

func (n *Notifier) write(mark, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i, line := range strings.Split(message, "\n") {
		prefix := "  "
		if i == 0 {
			prefix = mark + " "
		}
		fmt.Fprintln(n.out, prefix+line)
	}
}
