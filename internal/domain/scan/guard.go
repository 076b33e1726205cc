package scan

import (
	"github.com/prinzana/sellyticsOffline-sub002/internal/core/apperror"
	"github.com/prinzana/sellyticsOffline-sub002/internal/domain/sales/draft"
)

// CheckDuplicate rejects a code already present in the current draft.
//
// Add context checks every line; edit context checks only the single line
// being edited. Runs after the store-wide sold check ("already sold" is the
// more specific error), against the draft state at mutation time.
func CheckDuplicate(target Target, code string, d *draft.Draft) error {
	switch target.Context {
	case ContextEdit:
		if target.Line >= 0 && target.Line < len(d.Lines) && d.Lines[target.Line].HasCode(code) {
			return apperror.NewDuplicateInDraft(code)
		}
	default:
		if d.ContainsCode(code) {
			return apperror.NewDuplicateInDraft(code)
		}
	}
	return nil
}
