package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tatianab/rover-rescue/internal/challenge"
)

func PracticeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "practice",
		Short: "Practice the five knowledge checks",
		Long:  "Answer all five knowledge checks without playing the missions. Your score is not recorded.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPractice(cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

func runPractice(in io.Reader, out io.Writer) error {
	p, err := challenge.NewPractice()
	if err != nil {
		return err
	}

	bold := color.New(color.Bold)
	right := color.New(color.FgGreen)
	wrong := color.New(color.FgRed)
	scanner := bufio.NewScanner(in)

	bold.Fprintln(out, "🧠 KNOWLEDGE CHECK PRACTICE")
	for {
		pres, pos := p.Current()
		spec := pres.Spec()

		fmt.Fprintln(out)
		bold.Fprintf(out, "Question %d of %d: %s\n", pos, p.Total(), spec.Title)
		fmt.Fprintln(out, strings.TrimRight(spec.Prompt, "\n"))
		fmt.Fprintln(out)
		for i, o := range spec.Options {
			fmt.Fprintf(out, "  %c) %s\n", 'A'+rune(i), o)
		}

		var res challenge.Result
		for {
			fmt.Fprint(out, "> ")
			if !scanner.Scan() {
				if err := scanner.Err(); err != nil {
					return err
				}
				return fmt.Errorf("practice ended before question %d was answered", pos)
			}
			idx, ok := challenge.ParseAnswer(scanner.Text(), len(spec.Options))
			if !ok {
				fmt.Fprintf(out, "Answer with a letter from A to %c.\n", 'A'+rune(len(spec.Options)-1))
				continue
			}
			res, _ = p.Answer(idx)
			break
		}
		if res.IsCorrect {
			right.Fprintln(out, res.Feedback)
		} else {
			wrong.Fprintln(out, res.Feedback)
		}

		if p.Done() {
			break
		}
		if _, err := p.Next(); err != nil {
			return err
		}
	}

	fmt.Fprintln(out)
	bold.Fprintf(out, "Score: %d/%d\n", p.Score(), p.Total())
	fmt.Fprintln(out, challenge.Verdict(p.Score(), p.Total()))
	return nil
}
