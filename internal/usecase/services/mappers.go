package services

import (
	"time"

	"github.com/api-sage/deposit-ledger/internal/adapter/http/models"
	"github.com/api-sage/deposit-ledger/internal/domain"
)

const dateLayout = "2006-01-02"

func mapClientToResponse(client domain.Client) models.ClientResponse {
	resp := models.ClientResponse{
		ID:           client.ID,
		FullName:     client.FullName,
		PassportData: client.PassportData,
		PhoneNumber:  client.PhoneNumber,
		CreatedAt:    client.CreatedAt.Format(time.RFC3339),
	}
	if client.Email != nil {
		resp.Email = *client.Email
	}
	if client.Address != nil {
		resp.Address = *client.Address
	}
	return resp
}

func mapClientsToResponses(clients []domain.Client) []models.ClientResponse {
	out := make([]models.ClientResponse, 0, len(clients))
	for _, client := range clients {
		out = append(out, mapClientToResponse(client))
	}
	return out
}

func mapPlanToResponse(plan domain.DepositPlan) models.DepositPlanResponse {
	resp := models.DepositPlanResponse{
		ID:                     plan.ID,
		Name:                   plan.Name,
		Description:            plan.Description,
		InterestRate:           plan.InterestRate.StringFixed(2),
		MinAmount:              plan.MinAmount.StringFixed(2),
		DurationMonths:         plan.DurationMonths,
		EarlyWithdrawalPenalty: plan.EarlyWithdrawalPenalty.StringFixed(2),
		IsActive:               plan.IsActive,
		CreatedAt:              plan.CreatedAt.Format(time.RFC3339),
	}
	if plan.MaxAmount != nil {
		resp.MaxAmount = plan.MaxAmount.StringFixed(2)
	}
	return resp
}

func mapPlansToResponses(plans []domain.DepositPlan) []models.DepositPlanResponse {
	out := make([]models.DepositPlanResponse, 0, len(plans))
	for _, plan := range plans {
		out = append(out, mapPlanToResponse(plan))
	}
	return out
}

func mapDepositToResponse(deposit domain.Deposit) models.DepositResponse {
	resp := models.DepositResponse{
		ID:           deposit.ID,
		ClientID:     deposit.ClientID,
		PlanID:       deposit.DepositPlanID,
		DepositType:  deposit.DepositType,
		Amount:       deposit.Amount.StringFixed(2),
		InterestRate: deposit.InterestRate.StringFixed(2),
		OpenDate:     deposit.OpenDate.Format(dateLayout),
		Status:       string(deposit.Status),
	}
	if deposit.CloseDate != nil {
		resp.CloseDate = deposit.CloseDate.Format(dateLayout)
	}
	return resp
}

func mapDepositsToResponses(deposits []domain.Deposit) []models.DepositResponse {
	out := make([]models.DepositResponse, 0, len(deposits))
	for _, deposit := range deposits {
		out = append(out, mapDepositToResponse(deposit))
	}
	return out
}

func mapTransactionToResponse(txn domain.Transaction) models.TransactionResponse {
	return models.TransactionResponse{
		ID:              txn.ID,
		DepositID:       txn.DepositID,
		Type:            string(txn.Type),
		Amount:          txn.Amount.StringFixed(2),
		Description:     txn.Description,
		TransactionDate: txn.TransactionDate.Format(time.RFC3339),
	}
}
