package inspector

import (
	"github.com/msto63/lexan/internal/analyzer/service"
)

// analyzedMsg carries the outcome of one analysis. seq identifies the edit
// it was started for.
type analyzedMsg struct {
	seq  int
	resp *service.Response
	err  error
}
