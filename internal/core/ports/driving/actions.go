package driving

import (
	"context"

	"github.com/quarrylabs/quarry-cli/internal/core/domain"
)

// CitationActionService provides actions on cited chunks for external actors.
// This is used by the TUI and CLI adapters.
type CitationActionService interface {
	// CopyToClipboard copies text to the system clipboard.
	CopyToClipboard(ctx context.Context, text string) error

	// OpenCited opens the cited document's source file in the default
	// application.
	OpenCited(ctx context.Context, citation domain.Citation) error
}
