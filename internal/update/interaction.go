package update

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrCancelled is returned when the user aborts a run at a prompt. Nothing
// is written to disk once it surfaces.
var ErrCancelled = errors.New("update cancelled")

// versionPageSize is how many versions a selection prompt shows at once.
const versionPageSize = 10

// Interaction is the confirmation surface for interactive runs. Its only
// state is whether the user has chosen "apply to all remaining"; once set,
// later confirmations auto-accept without prompting. A disabled Interaction
// accepts everything silently.
type Interaction struct {
	enabled  bool
	applyAll bool
	in       *bufio.Reader
	out      io.Writer
}

// NewInteraction builds an Interaction reading answers from in and writing
// prompts to out.
func NewInteraction(enabled bool, in io.Reader, out io.Writer) *Interaction {
	return &Interaction{
		enabled: enabled,
		in:      bufio.NewReader(in),
		out:     out,
	}
}

// Confirm asks whether one entry should be updated. Accepted answers:
// empty or y(es) accepts this entry, n(o) declines it, a(ll) accepts this
// and every remaining entry, q(uit) aborts the run with ErrCancelled.
// Anything else re-prompts.
func (i *Interaction) Confirm(category, name, oldVersion, newVersion string) (bool, error) {
	if !i.enabled || i.applyAll {
		return true, nil
	}

	for {
		fmt.Fprintf(i.out, "update %s %s %s -> %s? [Y/n/a/q] ", category, name, oldVersion, newVersion)
		answer, err := i.readAnswer()
		if err != nil {
			return false, err
		}
		switch answer {
		case "", "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		case "a", "all":
			i.applyAll = true
			return true, nil
		case "q", "quit":
			return false, ErrCancelled
		}
	}
}

// SelectCandidate asks the user to pick one entry from a matched set.
func (i *Interaction) SelectCandidate(candidates []Candidate) (Candidate, error) {
	fmt.Fprintf(i.out, "%d entries match:\n", len(candidates))
	for n, c := range candidates {
		fmt.Fprintf(i.out, "  %2d) %s (%s)\n", n+1, c.Alias, c.Section)
	}

	for {
		fmt.Fprintf(i.out, "select entry [1-%d, q to quit]: ", len(candidates))
		answer, err := i.readAnswer()
		if err != nil {
			return Candidate{}, err
		}
		if answer == "q" || answer == "quit" {
			return Candidate{}, ErrCancelled
		}
		n, err := strconv.Atoi(answer)
		if err != nil || n < 1 || n > len(candidates) {
			continue
		}
		return candidates[n-1], nil
	}
}

// SelectVersion presents available versions (newest first) a page at a
// time and returns the chosen one. An empty return with nil error means
// the user skipped without choosing.
func (i *Interaction) SelectVersion(name, current string, versions []string) (string, error) {
	shown := 0
	for {
		end := shown + versionPageSize
		if end > len(versions) {
			end = len(versions)
		}
		for n := shown; n < end; n++ {
			marker := ""
			if versions[n] == current {
				marker = " (current)"
			}
			fmt.Fprintf(i.out, "  %2d) %s%s\n", n+1, versions[n], marker)
		}
		shown = end

		prompt := fmt.Sprintf("select version for %s [1-%d, s to skip, q to quit]: ", name, shown)
		if shown < len(versions) {
			prompt = fmt.Sprintf("select version for %s [1-%d, m for more, s to skip, q to quit]: ", name, shown)
		}

		nextPage := false
		for !nextPage {
			fmt.Fprint(i.out, prompt)
			answer, err := i.readAnswer()
			if err != nil {
				return "", err
			}
			switch answer {
			case "q", "quit":
				return "", ErrCancelled
			case "s", "skip":
				return "", nil
			case "m", "more":
				if shown < len(versions) {
					nextPage = true
				}
				continue
			}
			n, err := strconv.Atoi(answer)
			if err != nil || n < 1 || n > shown {
				continue
			}
			return versions[n-1], nil
		}
	}
}

func (i *Interaction) readAnswer() (string, error) {
	line, err := i.in.ReadString('\n')
	if err != nil && line == "" {
		// Treat a closed input stream like an explicit quit.
		return "", ErrCancelled
	}
	return strings.ToLower(strings.TrimSpace(line)), nil
}
