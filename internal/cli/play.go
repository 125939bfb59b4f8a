package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"quizquest/internal/attempt"
	"quizquest/internal/domain"
	"quizquest/internal/reward"
)

const maxInputAttempts = 3

// Player runs an interactive challenge attempt in a terminal. All user
// interaction flows through the attempt engine; the player itself holds no
// answer state.
type Player struct {
	engine *attempt.Engine
	in     *bufio.Reader
	out    io.Writer
}

// NewPlayer creates a Player reading answers from in and printing to out.
func NewPlayer(engine *attempt.Engine, in io.Reader, out io.Writer) *Player {
	return &Player{
		engine: engine,
		in:     bufio.NewReader(in),
		out:    out,
	}
}

// Run plays the given challenge from start to result. It returns an error
// only for I/O failures; grading failures surface through the engine's retry
// prompt.
func (p *Player) Run(ctx context.Context, challengeID string) error {
	if err := p.engine.StartAttempt(ctx, challengeID); err != nil {
		return err
	}

	challenge := p.engine.Challenge()
	fmt.Fprintf(p.out, "\n%s (%s, %d questions)\n", challenge.Title, challenge.Difficulty, p.engine.QuestionCount())
	if challenge.Description != "" {
		fmt.Fprintln(p.out, challenge.Description)
	}

	for p.engine.CurrentState() == attempt.StateInProgress {
		if err := p.playCurrentQuestion(ctx); err != nil {
			return err
		}
	}

	for p.engine.CurrentState() == attempt.StateError {
		fmt.Fprintf(p.out, "\nSubmission failed: %s\n", p.engine.ErrorMessage())
		if !p.confirm("Retry submission? [y/n]: ") {
			return fmt.Errorf("submission abandoned: %s", p.engine.ErrorMessage())
		}
		if err := p.engine.Resubmit(ctx); err != nil {
			return err
		}
	}

	p.printResult()
	return nil
}

func (p *Player) playCurrentQuestion(ctx context.Context) error {
	q, err := p.engine.CurrentQuestion()
	if err != nil {
		// Malformed question: nothing to answer, move past it.
		fmt.Fprintf(p.out, "\nQ%d could not be displayed, skipping.\n", p.engine.CurrentIndex()+1)
		return p.engine.GoNext(ctx)
	}

	p.printQuestion(q)

	answer, goBack, err := p.readAnswer(q)
	if err != nil {
		return err
	}
	if goBack {
		if err := p.engine.GoPrevious(); err != nil {
			fmt.Fprintln(p.out, "Already at the first question.")
		}
		return nil
	}

	if err := p.engine.SubmitDraft(answer); err != nil {
		fmt.Fprintf(p.out, "Answer rejected: %v\n", err)
		return nil
	}
	if err := p.engine.GoNext(ctx); err != nil {
		fmt.Fprintf(p.out, "%v\n", err)
	}
	return nil
}

func (p *Player) printQuestion(q domain.Question) {
	fmt.Fprintf(p.out, "\nQ%d/%d", p.engine.CurrentIndex()+1, p.engine.QuestionCount())
	if p.engine.CurrentIndex() > 0 {
		fmt.Fprint(p.out, "  (p = previous question)")
	}
	fmt.Fprintln(p.out)

	switch q.Type {
	case domain.QuestionMultipleChoice:
		fmt.Fprintf(p.out, "%s\n\n", q.Text)
		for i, opt := range q.Options {
			fmt.Fprintf(p.out, "  %c. %s\n", 'A'+i, opt)
		}
		if q.IsMultiAnswer() {
			fmt.Fprintln(p.out, "\nSelect all that apply (e.g. A,C):")
		}
	case domain.QuestionShortAnswer:
		fmt.Fprintf(p.out, "%s\n", q.Text)
	case domain.QuestionForcedRecall:
		fmt.Fprintf(p.out, "%s\n", q.TableTitle)
		if q.TableDescription != "" {
			fmt.Fprintln(p.out, q.TableDescription)
		}
	}
}

// readAnswer collects a draft answer for the question. The second return is
// true when the user asked to go back.
func (p *Player) readAnswer(q domain.Question) (domain.Answer, bool, error) {
	switch q.Type {
	case domain.QuestionMultipleChoice:
		return p.readChoice(q)
	case domain.QuestionShortAnswer:
		line, back, err := p.readLine("> ")
		if back || err != nil {
			return domain.Answer{}, back, err
		}
		return domain.NewShortAnswer(line), false, nil
	case domain.QuestionForcedRecall:
		return p.readTableEntries(q)
	}
	return domain.EmptyAnswerFor(q), false, nil
}

func (p *Player) readChoice(q domain.Question) (domain.Answer, bool, error) {
	maxLetter := byte('A' + len(q.Options) - 1)

	for tries := 0; tries < maxInputAttempts; tries++ {
		line, back, err := p.readLine("> ")
		if back || err != nil {
			return domain.Answer{}, back, err
		}

		indices, ok := parseChoiceInput(line, maxLetter)
		if !ok || len(indices) == 0 {
			fmt.Fprintf(p.out, "Enter a letter A-%c.\n", maxLetter)
			continue
		}

		if q.IsMultiAnswer() {
			return domain.NewMultiChoiceAnswer(indices...), false, nil
		}
		return domain.NewSingleChoiceAnswer(indices[0]), false, nil
	}
	return domain.EmptyAnswerFor(q), false, nil
}

func (p *Player) readTableEntries(q domain.Question) (domain.Answer, bool, error) {
	answer := domain.NewForcedRecallAnswer(nil)
	for _, entry := range q.TableEntries {
		line, back, err := p.readLine(fmt.Sprintf("%s: ", entry.Label))
		if back || err != nil {
			return domain.Answer{}, back, err
		}
		if line != "" {
			answer.SetEntry(entry.EntryID, line)
		}
	}
	return answer, false, nil
}

// readLine reads one trimmed input line. A lone "p" means go back.
func (p *Player) readLine(prompt string) (string, bool, error) {
	fmt.Fprint(p.out, prompt)
	line, err := p.in.ReadString('\n')
	if err != nil {
		return "", false, err
	}
	line = strings.TrimSpace(line)
	if strings.EqualFold(line, "p") {
		return "", true, nil
	}
	return line, false, nil
}

func (p *Player) confirm(prompt string) bool {
	fmt.Fprint(p.out, prompt)
	line, err := p.in.ReadString('\n')
	if err != nil {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(line), "y")
}

func (p *Player) printResult() {
	result := p.engine.Result()
	if result == nil {
		return
	}

	score := result.Score
	summary := reward.BuildSummary(result.Breakdown, &score, p.engine.EstimatedScore(), result.ElapsedSeconds)

	fmt.Fprintf(p.out, "\nScore: %d%%\n", summary.Score)
	for _, line := range summary.Lines {
		fmt.Fprintf(p.out, "  %-20s %s\n", line.Label, line.Value)
	}
	fmt.Fprintf(p.out, "Time: %s\n", reward.FormatElapsed(summary.ElapsedSeconds))
}

// parseChoiceInput turns input like "B" or "A,C" into zero-based option
// indices, deduplicated and sorted.
func parseChoiceInput(line string, maxLetter byte) ([]int, bool) {
	parts := strings.FieldsFunc(strings.ToUpper(line), func(r rune) bool {
		return r == ',' || r == ' '
	})
	seen := make(map[int]bool)
	indices := make([]int, 0, len(parts))
	for _, part := range parts {
		var idx int
		if len(part) == 1 && part[0] >= 'A' && part[0] <= maxLetter {
			idx = int(part[0] - 'A')
		} else if n, err := strconv.Atoi(part); err == nil && n >= 1 && n <= int(maxLetter-'A')+1 {
			idx = n - 1
		} else {
			return nil, false
		}
		if !seen[idx] {
			seen[idx] = true
			indices = append(indices, idx)
		}
	}
	sort.Ints(indices)
	return indices, true
}
