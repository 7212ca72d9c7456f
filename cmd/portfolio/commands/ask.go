// ABOUTME: Ask command runs one question through the chat pipeline
// ABOUTME: --prompt prints the assembled prompt without calling the completion model
package commands

import (
	"fmt"

	"github.com/harper/portfolio-backend/internal/rag"
	"github.com/spf13/cobra"
)

var askPromptOnly bool

// NewAskCmd creates the ask command
func NewAskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask the portfolio assistant a question",
		Long: `Ask the portfolio assistant a question.

Runs the same pipeline as POST /api/v1/chat: embed the question,
retrieve projects and certificates, build the persona prompt,
and generate an answer.

Examples:
  portfolio ask "What AI projects have you built?"
  portfolio ask --prompt "Which certifications do you hold?"
  portfolio ask --format json "Tell me about your work"`,
		Args: cobra.ExactArgs(1),
		RunE: runAsk,
	}

	cmd.Flags().BoolVar(&askPromptOnly, "prompt", false, "Print the assembled prompt instead of calling the model")

	return cmd
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	store, _, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore(store)

	embedder, completer, err := newProvider(ctx, cfg)
	if err != nil {
		return err
	}
	orchestrator := newOrchestrator(cfg, embedder, completer, store, rag.StaticPersona(cfg.Persona))

	if askPromptOnly {
		prompt, err := orchestrator.PreparePrompt(ctx, question)
		if err != nil {
			return fmt.Errorf("building prompt: %w", err)
		}
		if outputFormat == "json" {
			return writeJSON(cmd.OutOrStdout(), map[string]string{"question": question, "prompt": prompt})
		}
		fmt.Fprintln(cmd.OutOrStdout(), prompt)
		return nil
	}

	answer, err := orchestrator.HandleChat(ctx, question)
	if err != nil {
		return err
	}
	if outputFormat == "json" {
		return writeJSON(cmd.OutOrStdout(), map[string]string{"question": question, "answer": answer})
	}
	fmt.Fprintln(cmd.OutOrStdout(), answer)
	return nil
}
