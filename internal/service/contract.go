package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"nanny-payroll-bot/internal/logging"
	"nanny-payroll-bot/internal/models"
	"nanny-payroll-bot/internal/payroll"
	"nanny-payroll-bot/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Статусы срока действия договора
const (
	ExpiryNone          = "No expiry set"
	ExpiryExpired       = "Expired"
	ExpirySoon          = "Expiring soon"
	ExpiryRenewalNeeded = "Renewal needed"
	ExpiryActive        = "Active"
)

// ContractInput - данные нового договора в текстовом виде, как их вводит пользователь
type ContractInput struct {
	Title          string `validate:"max=200"`
	StartDate      string `validate:"required,datetime=2006-01-02"`
	EndDate        string `validate:"omitempty,datetime=2006-01-02"`
	BaseHourlyRate string `validate:"required,numeric"`
	OvertimeRate   string `validate:"omitempty,numeric"`
	VacationDays   int    `validate:"gte=0"`
	SickDays       int    `validate:"gte=0"`
	Terms          string
	Benefits       string
}

type ContractService struct {
	repo   repository.ContractRepository
	logger *logrus.Logger
}

func NewContractService(repo repository.ContractRepository) *ContractService {
	return &ContractService{
		repo:   repo,
		logger: logging.New(),
	}
}

// Create проверяет данные и сохраняет активный договор
func (s *ContractService) Create(ctx context.Context, in ContractInput) (*models.Contract, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	base, err := decimal.NewFromString(in.BaseHourlyRate)
	if err != nil || base.IsNegative() {
		return nil, invalidInput("ставка должна быть неотрицательным числом")
	}

	contract := &models.Contract{
		Title:          strings.TrimSpace(in.Title),
		StartDate:      in.StartDate,
		EndDate:        in.EndDate,
		BaseHourlyRate: base.Round(2),
		VacationDays:   in.VacationDays,
		SickDays:       in.SickDays,
		Terms:          in.Terms,
		Benefits:       in.Benefits,
		IsActive:       true,
	}

	if in.OvertimeRate != "" {
		overtime, err := decimal.NewFromString(in.OvertimeRate)
		if err != nil || overtime.IsNegative() {
			return nil, invalidInput("ставка сверхурочных должна быть неотрицательным числом")
		}
		contract.OvertimeRate = decimal.NewNullDecimal(overtime.Round(2))
	}

	if in.EndDate != "" && in.EndDate < in.StartDate {
		return nil, invalidInput("дата окончания раньше даты начала")
	}

	if err := s.repo.Create(ctx, contract); err != nil {
		return nil, fmt.Errorf("ошибка создания договора: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"id":         contract.ID,
		"start_date": contract.StartDate,
		"rate":       contract.BaseHourlyRate.String(),
	}).Info("Contract created")

	return contract, nil
}

func (s *ContractService) List(ctx context.Context) ([]models.Contract, error) {
	return s.repo.GetAll(ctx)
}

// Active возвращает договор, по которому ведется расчет, или nil
func (s *ContractService) Active(ctx context.Context) (*models.Contract, error) {
	return s.repo.GetActive(ctx)
}

// Deactivate снимает признак активности. Периоды договора остаются в базе.
func (s *ContractService) Deactivate(ctx context.Context, id uint) error {
	if err := s.repo.SetActive(ctx, id, false); err != nil {
		return fmt.Errorf("ошибка деактивации договора %d: %w", id, err)
	}
	s.logger.WithField("id", id).Info("Contract deactivated")
	return nil
}

// ExpiryStatus определяет статус срока действия договора на дату today
func ExpiryStatus(contract models.Contract, today time.Time) string {
	if contract.IsOpenEnded() {
		return ExpiryNone
	}
	end, ok := payroll.ParseDate(contract.EndDate)
	if !ok {
		return ExpiryNone
	}

	days := int(end.Sub(payroll.DateOf(today)).Hours() / 24)
	switch {
	case days < 0:
		return ExpiryExpired
	case days <= 30:
		return ExpirySoon
	case days <= 90:
		return ExpiryRenewalNeeded
	default:
		return ExpiryActive
	}
}

// FormatContracts форматирует список договоров для вывода
func FormatContracts(contracts []models.Contract, today time.Time) string {
	if len(contracts) == 0 {
		return "📭 Договоров пока нет. Добавьте договор командой /addcontract"
	}

	var lines []string
	lines = append(lines, "📄 Договоры:")

	for _, c := range contracts {
		lines = append(lines, "")

		title := c.Title
		if title == "" {
			title = "Договор"
		}
		marker := "⚪"
		if c.IsActive {
			marker = "🟢"
		}
		lines = append(lines, fmt.Sprintf("%s #%d %s", marker, c.ID, title))

		end := "бессрочно"
		if !c.IsOpenEnded() {
			end = payroll.DisplayDate(c.EndDate)
		}
		lines = append(lines, fmt.Sprintf("📅 %s - %s", payroll.DisplayDate(c.StartDate), end))
		lines = append(lines, fmt.Sprintf("💵 Ставка: $%s/ч", c.BaseHourlyRate.StringFixed(2)))
		if c.OvertimeRate.Valid {
			lines = append(lines, fmt.Sprintf("⏱ Сверхурочные: $%s/ч", c.OvertimeRate.Decimal.StringFixed(2)))
		}
		if c.VacationDays > 0 || c.SickDays > 0 {
			lines = append(lines, fmt.Sprintf("🏖 Отпуск: %d дн., больничные: %d дн.", c.VacationDays, c.SickDays))
		}
		lines = append(lines, fmt.Sprintf("📌 Статус: %s", ExpiryStatus(c, today)))
	}

	return strings.Join(lines, "\n")
}
