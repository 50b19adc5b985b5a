package declarative

import (
	"fmt"
	"sync/atomic"

	"github.com/vango-dev/declarative/internal/errors"
)

var branchChecks atomic.Bool

func init() {
	branchChecks.Store(defaultBranchChecks)
}

// SetBranchChecks turns construction-time branch validation on or off and
// returns the previous setting.
func SetBranchChecks(on bool) bool {
	return branchChecks.Swap(on)
}

// BranchChecks reports whether If validates its branches.
func BranchChecks() bool {
	return branchChecks.Load()
}

// Validate checks the structure of a branch list:
//
//   - E101: the list is empty
//   - E102: the first branch is not Then
//   - E103: more than one Then
//   - E105: more than one Else
//   - E104: Else is not the last branch
//
// The first violation found, in that order, is returned as an *errors.Error.
func Validate(branches []Branch) error {
	if err := validate(branches); err != nil {
		return err
	}
	return nil
}

func validate(branches []Branch) *errors.Error {
	if len(branches) == 0 {
		return errors.New("E101").
			WithSuggestion("Add declarative.Then(...) as the first branch")
	}
	if k := branches[0].Kind(); k != KindThen {
		return errors.New("E102").
			WithDetail(fmt.Sprintf("The first branch is %s; Then must come before any ElseIf or Else.", k)).
			WithSuggestion("Move declarative.Then(...) to the front of the branch list")
	}

	thens, elses, elseAt := 0, 0, -1
	for i, b := range branches {
		switch b.Kind() {
		case KindThen:
			thens++
		case KindElse:
			elses++
			if elseAt < 0 {
				elseAt = i
			}
		}
	}

	if thens > 1 {
		return errors.New("E103").
			WithDetail(fmt.Sprintf("Found %d Then branches; an If may contain only one.", thens)).
			WithSuggestion("Turn the extra Then branches into ElseIf branches")
	}
	if elses > 1 {
		return errors.New("E105").
			WithDetail(fmt.Sprintf("Found %d Else branches; an If may contain at most one.", elses))
	}
	if elseAt >= 0 && elseAt != len(branches)-1 {
		return errors.New("E104").
			WithDetail(fmt.Sprintf("Else is branch %d of %d; branches after it could never render.", elseAt+1, len(branches))).
			WithSuggestion("Move declarative.Else(...) to the end of the branch list")
	}
	return nil
}
