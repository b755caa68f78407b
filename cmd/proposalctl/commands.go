package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Idosegev23/pptmaker-sub001/document"
	"github.com/Idosegev23/pptmaker-sub001/project"
	"github.com/Idosegev23/pptmaker-sub001/step"
	"github.com/Idosegev23/pptmaker-sub001/validate"
	"github.com/Idosegev23/pptmaker-sub001/wizard"
)

// rootFlags holds options shared by every subcommand
type rootFlags struct {
	stepsFile string
	rulesFile string
	logLevel  string
	logFormat string
}

func newRootCommand() *cobra.Command {
	flags := &rootFlags{}
	var logger *slog.Logger

	root := &cobra.Command{
		Use:           appName,
		Short:         "Inspect and repair persisted proposal wizard documents",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = setupLogger(flags.logLevel, flags.logFormat)
		},
	}

	root.PersistentFlags().StringVar(&flags.stepsFile, "steps", "",
		"YAML step definitions file (default: built-in six-step flow)")
	root.PersistentFlags().StringVar(&flags.rulesFile, "rules", "",
		"YAML validation rules file (default: built-in rules)")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "warn",
		"log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&flags.logFormat, "log-format", "text",
		"log format: json, text")

	root.AddCommand(
		newInspectCommand(flags, &logger),
		newValidateCommand(flags, &logger),
		newProjectCommand(flags, &logger),
		newReplayCommand(flags, &logger),
	)
	return root
}

func loadRegistry(flags *rootFlags) (*step.Registry, error) {
	if flags.stepsFile == "" {
		return step.Default(), nil
	}
	data, err := os.ReadFile(flags.stepsFile)
	if err != nil {
		return nil, fmt.Errorf("read steps file: %w", err)
	}
	return step.FromYAML(data)
}

func loadDocument(flags *rootFlags, logger *slog.Logger, path string) (*step.Registry, document.LoadResult, error) {
	reg, err := loadRegistry(flags)
	if err != nil {
		return nil, document.LoadResult{}, err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, document.LoadResult{}, fmt.Errorf("read document: %w", err)
	}

	res, err := document.Load(reg, raw, logger, nil)
	if err != nil {
		return nil, document.LoadResult{}, err
	}
	return reg, res, nil
}

func printJSON(cmd *cobra.Command, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	cmd.Println(string(out))
	return nil
}

func newInspectCommand(flags *rootFlags, logger **slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <document.json>",
		Short: "Show where a persisted session stands",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, res, err := loadDocument(flags, *logger, args[0])
			if err != nil {
				return err
			}

			done, total := res.State.Progress(reg)
			historyDepth := 0
			for _, stack := range res.State.VersionHistory {
				historyDepth += stack.Len()
			}

			return printJSON(cmd, map[string]any{
				"id":           res.ID,
				"mode":         res.Mode,
				"currentStep":  res.State.CurrentStep,
				"stepStatuses": res.State.StepStatuses,
				"progress":     fmt.Sprintf("%d/%d", done, total),
				"isDirty":      res.State.IsDirty,
				"lastSavedAt":  res.State.LastSavedAt,
				"historyKeys":  len(res.State.VersionHistory),
				"historyDepth": historyDepth,
			})
		},
	}
}

func newValidateCommand(flags *rootFlags, logger **slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <document.json>",
		Short: "Validate every step's data against the rule set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, res, err := loadDocument(flags, *logger, args[0])
			if err != nil {
				return err
			}

			engine := validate.New(reg)
			if flags.rulesFile != "" {
				data, err := os.ReadFile(flags.rulesFile)
				if err != nil {
					return fmt.Errorf("read rules file: %w", err)
				}
				rules, err := validate.RulesFromYAML(reg, data)
				if err != nil {
					return err
				}
				engine = validate.NewWithRules(reg, rules)
			}

			failures := map[step.ID]map[string]string{}
			for _, id := range reg.Ordered() {
				if errs := engine.Validate(id, res.State.StepData[id]); len(errs) > 0 {
					failures[id] = errs
				}
			}

			if err := printJSON(cmd, failures); err != nil {
				return err
			}
			if len(failures) > 0 {
				return fmt.Errorf("%d step(s) failed validation", len(failures))
			}
			return nil
		},
	}
}

func newProjectCommand(flags *rootFlags, logger **slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "project <document.json>",
		Short: "Flatten step data into the proposal shape",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, res, err := loadDocument(flags, *logger, args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, project.Project(reg, res.State.StepData))
		},
	}
}

func newReplayCommand(flags *rootFlags, logger **slog.Logger) *cobra.Command {
	var actionsFile string
	var write bool

	cmd := &cobra.Command{
		Use:   "replay <document.json>",
		Short: "Apply a JSON action log to a document and print the result",
		Long: "Replay loads a document, dispatches each action from the log in order,\n" +
			"and prints the resulting state. Rejected actions are reported but do not\n" +
			"abort the replay; with --write the resulting document replaces the input file.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, res, err := loadDocument(flags, *logger, args[0])
			if err != nil {
				return err
			}

			raw, err := os.ReadFile(actionsFile)
			if err != nil {
				return fmt.Errorf("read actions file: %w", err)
			}
			actions, err := wizard.DecodeActionLog(raw)
			if err != nil {
				return err
			}

			sess, err := wizard.NewSession(reg, res.State, *logger, nil)
			if err != nil {
				return err
			}

			rejected := 0
			for i, action := range actions {
				if dispatchRes := sess.Dispatch(action); !dispatchRes.Applied {
					rejected++
					(*logger).Warn("Replay action rejected",
						"index", i,
						"action", action.ActionName(),
						"reason", dispatchRes.Reason)
				}
			}
			(*logger).Info("Replay finished",
				"actions", len(actions),
				"rejected", rejected)

			if write {
				blob, err := document.Encode(res.ID, sess.State())
				if err != nil {
					return err
				}
				if err := os.WriteFile(args[0], blob, 0o644); err != nil {
					return fmt.Errorf("write document: %w", err)
				}
				return nil
			}
			return printJSON(cmd, sess.State())
		},
	}

	cmd.Flags().StringVar(&actionsFile, "actions", "", "JSON action log to replay (required)")
	cmd.Flags().BoolVar(&write, "write", false, "write the resulting state back to the document file")
	_ = cmd.MarkFlagRequired("actions")
	return cmd
}
