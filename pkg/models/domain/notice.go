package domain

import "fmt"

type NoticeLevel string

const (
	NoticeInfo    NoticeLevel = "info"
	NoticeWarning NoticeLevel = "warning"
)

// Notice reports a degraded-data condition that did not stop the run.
type Notice struct {
	Level   NoticeLevel
	Code    string
	Message string
	Count   int
}

func (n Notice) String() string {
	return fmt.Sprintf("[%s] %s (%d)", n.Level, n.Message, n.Count)
}
