package app

import (
	"shift-leave-bot/internal/config"
	"shift-leave-bot/internal/repository"
	"shift-leave-bot/internal/schedule"
	"shift-leave-bot/internal/service"

	"github.com/sirupsen/logrus"
)

// App - книга отпусков и сервисы поверх нее, общие для бота, API и CLI
type App struct {
	Ledger repository.StoredLedger
	Leave  *service.LeaveService
	Audit  *service.AuditService
	Roster *service.RosterService

	closeLedger func() error
}

// New открывает книгу отпусков и собирает сервисы
func New(cfg *config.Config) (*App, error) {
	ledger, closeLedger, err := repository.OpenLedger(cfg)
	if err != nil {
		return nil, err
	}

	calendar := schedule.NewCalendar(cfg.RedGreenAnchor, cfg.BlueYellowAnchor)

	return &App{
		Ledger:      ledger,
		Leave:       service.NewLeaveService(ledger, calendar, cfg.PlanningYear),
		Audit:       service.NewAuditService(ledger),
		Roster:      service.NewRosterService(ledger),
		closeLedger: closeLedger,
	}, nil
}

// Close закрывает книгу отпусков
func (a *App) Close() {
	if err := a.closeLedger(); err != nil {
		logrus.Infof("Error closing ledger: %v", err)
	}
}
