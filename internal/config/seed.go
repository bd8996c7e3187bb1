package config

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/api-sage/deposit-ledger/internal/domain"
)

//go:embed default_plans.yaml
var defaultPlansYAML []byte

type seedDocument struct {
	Plans []seedPlan `yaml:"plans"`
}

type seedPlan struct {
	Name                   string `yaml:"name"`
	Description            string `yaml:"description"`
	InterestRate           string `yaml:"interest_rate"`
	MinAmount              string `yaml:"min_amount"`
	MaxAmount              string `yaml:"max_amount"`
	DurationMonths         int    `yaml:"duration_months"`
	EarlyWithdrawalPenalty string `yaml:"early_withdrawal_penalty"`
}

// DefaultPlans parses the embedded seed document into plan records ready
// for insert-if-absent seeding.
func DefaultPlans() ([]domain.DepositPlan, error) {
	return parsePlans(defaultPlansYAML)
}

func parsePlans(raw []byte) ([]domain.DepositPlan, error) {
	var doc seedDocument
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse default plans document: %w", err)
	}

	plans := make([]domain.DepositPlan, 0, len(doc.Plans))
	for _, p := range doc.Plans {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			return nil, fmt.Errorf("default plan with empty name")
		}

		rate, err := decimal.NewFromString(strings.TrimSpace(p.InterestRate))
		if err != nil {
			return nil, fmt.Errorf("default plan %q interest rate: %w", name, err)
		}

		minAmount, err := decimal.NewFromString(strings.TrimSpace(p.MinAmount))
		if err != nil {
			return nil, fmt.Errorf("default plan %q min amount: %w", name, err)
		}

		var maxAmount *decimal.Decimal
		if trimmed := strings.TrimSpace(p.MaxAmount); trimmed != "" {
			parsed, err := decimal.NewFromString(trimmed)
			if err != nil {
				return nil, fmt.Errorf("default plan %q max amount: %w", name, err)
			}
			maxAmount = &parsed
		}

		penalty := decimal.Zero
		if trimmed := strings.TrimSpace(p.EarlyWithdrawalPenalty); trimmed != "" {
			parsed, err := decimal.NewFromString(trimmed)
			if err != nil {
				return nil, fmt.Errorf("default plan %q early withdrawal penalty: %w", name, err)
			}
			penalty = parsed
		}

		if p.DurationMonths <= 0 {
			return nil, fmt.Errorf("default plan %q duration must be positive", name)
		}

		plans = append(plans, domain.DepositPlan{
			Name:                   name,
			Description:            strings.TrimSpace(p.Description),
			InterestRate:           rate,
			MinAmount:              minAmount,
			MaxAmount:              maxAmount,
			DurationMonths:         p.DurationMonths,
			EarlyWithdrawalPenalty: penalty,
			IsActive:               true,
		})
	}

	return plans, nil
}
