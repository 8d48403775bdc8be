package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"shift-leave-bot/internal/app"
	"shift-leave-bot/internal/config"
	"shift-leave-bot/internal/models"
	"shift-leave-bot/internal/repository"
	"shift-leave-bot/internal/service"

	"github.com/spf13/cobra"
)

type configLoader func() (*config.Config, error)

type leaveFlags struct {
	name  string
	shift string
	from  string
	to    string
}

func newRootCmd(load configLoader) *cobra.Command {
	root := &cobra.Command{
		Use:           "leavectl",
		Short:         "Заявки на отпуск по книге отпусков смен",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newBookCmd(load),
		newCancelCmd(load),
		newWorkdayCmd(load),
		newHistoryCmd(load),
		newEmployeesCmd(load),
		newLoadRosterCmd(load),
		newInitWorkbookCmd(load),
	)
	return root
}

// withApp открывает книгу на время одной команды
func withApp(load configLoader, fn func(cfg *config.Config, a *app.App) error) error {
	cfg, err := load()
	if err != nil {
		return err
	}

	a, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	return fn(cfg, a)
}

func (f *leaveFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "имя сотрудника, как в книге")
	cmd.Flags().StringVar(&f.shift, "shift", "", "смена: Red, Green, Blue или Yellow")
	cmd.Flags().StringVar(&f.from, "from", "", "первый день, YYYY-MM-DD")
	cmd.Flags().StringVar(&f.to, "to", "", "последний день, YYYY-MM-DD (по умолчанию равен --from)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("shift")
	_ = cmd.MarkFlagRequired("from")
}

func (f *leaveFlags) request() (models.LeaveRequest, error) {
	start, err := time.Parse(models.DateLayout, f.from)
	if err != nil {
		return models.LeaveRequest{}, fmt.Errorf("--from must be YYYY-MM-DD: %w", err)
	}

	end := start
	if f.to != "" {
		if end, err = time.Parse(models.DateLayout, f.to); err != nil {
			return models.LeaveRequest{}, fmt.Errorf("--to must be YYYY-MM-DD: %w", err)
		}
	}

	return models.LeaveRequest{
		EmployeeName: f.name,
		Shift:        f.shift,
		StartDate:    start,
		EndDate:      end,
	}, nil
}

func newBookCmd(load configLoader) *cobra.Command {
	flags := &leaveFlags{}
	cmd := &cobra.Command{
		Use:   "book",
		Short: "Запросить отпуск",
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := flags.request()
			if err != nil {
				return err
			}

			return withApp(load, func(_ *config.Config, a *app.App) error {
				decision, err := a.Leave.RequestLeave(req)
				if decision == nil {
					return err
				}
				if printErr := printJSON(cmd.OutOrStdout(), decision); printErr != nil {
					return printErr
				}
				if errors.Is(err, service.ErrAuditNotRecorded) {
					return err
				}
				return decision.Err()
			})
		},
	}
	flags.bind(cmd)
	return cmd
}

func newCancelCmd(load configLoader) *cobra.Command {
	flags := &leaveFlags{}
	cmd := &cobra.Command{
		Use:   "cancel",
		Short: "Отменить отпуск",
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := flags.request()
			if err != nil {
				return err
			}

			return withApp(load, func(_ *config.Config, a *app.App) error {
				result, err := a.Leave.CancelLeave(req)
				if result == nil {
					return err
				}
				if printErr := printJSON(cmd.OutOrStdout(), result); printErr != nil {
					return printErr
				}
				if err != nil {
					return err
				}
				if result.Decision != nil {
					return result.Decision.Err()
				}
				return nil
			})
		},
	}
	flags.bind(cmd)
	return cmd
}

func newWorkdayCmd(load configLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "workday SHIFT DATE",
		Short: "Проверить, рабочий ли день у смены",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := time.Parse(models.DateLayout, args[1])
			if err != nil {
				return fmt.Errorf("date must be YYYY-MM-DD: %w", err)
			}

			return withApp(load, func(_ *config.Config, a *app.App) error {
				working, err := a.Leave.IsWorkday(args[0], date)
				if err != nil {
					return err
				}
				state := "off"
				if working {
					state = "workday"
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %s\n", models.ParseShift(args[0]), date.Format(models.DateLayout), state)
				return err
			})
		},
	}
}

func newHistoryCmd(load configLoader) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history NAME",
		Short: "Журнал решений по сотруднику",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(load, func(_ *config.Config, a *app.App) error {
				records, err := a.Audit.History(args[0])
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), a.Audit.FormatHistory(args[0], records, limit))
				return err
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "сколько записей показать (0 - все)")
	return cmd
}

func newEmployeesCmd(load configLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "employees",
		Short: "Сотрудники книги по сменам",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(load, func(_ *config.Config, a *app.App) error {
				employees, err := a.Roster.Employees()
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), a.Roster.FormatEmployees(employees))
				return err
			})
		},
	}
}

func newLoadRosterCmd(load configLoader) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "load-roster",
		Short: "Загрузить сотрудников из JSON файла",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(load, func(cfg *config.Config, a *app.App) error {
				if file == "" {
					file = cfg.RosterFile
				}
				result, err := a.Roster.LoadFromJSON(file)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "added: %d, skipped: %d\n", len(result.Added), len(result.Skipped))
				return err
			})
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "файл со списком сотрудников (по умолчанию ROSTER_FILE)")
	return cmd
}

func newInitWorkbookCmd(load configLoader) *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "init-workbook",
		Short: "Создать пустую книгу отпусков .xlsx на плановый год",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			if path == "" {
				path = cfg.WorkbookPath
			}

			if err := repository.CreateWorkbook(path, cfg.SheetName, cfg.AuditSheetName, cfg.PlanningYear); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "created %s for %d\n", path, cfg.PlanningYear)
			return err
		},
	}
	cmd.Flags().StringVar(&path, "path", "", "путь к файлу (по умолчанию WORKBOOK_PATH)")
	return cmd
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
