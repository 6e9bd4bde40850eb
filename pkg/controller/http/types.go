package http

import (
	"time"

	"github.com/vigil-lab/argus/pkg/domain/model"
	"github.com/vigil-lab/argus/pkg/usecase"
)

// Wire representations of domain models. The engine stores rich Go types;
// the API speaks snake_case JSON.

type paymentReminderDTO struct {
	RecipientID string `json:"recipient_id"`
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency,omitempty"`
	DaysOverdue int    `json:"days_overdue,omitempty"`
	Message     string `json:"message,omitempty"`
}

type leadResponseDTO struct {
	LeadID  string `json:"lead_id"`
	Channel string `json:"channel,omitempty"`
	Message string `json:"message"`
}

type reviewReplyDTO struct {
	ReviewID string `json:"review_id"`
	Rating   int    `json:"rating,omitempty"`
	Reply    string `json:"reply"`
}

type scheduleChangeDTO struct {
	BookingID string    `json:"booking_id"`
	From      time.Time `json:"from"`
	To        time.Time `json:"to"`
}

type scheduleOptimizationDTO struct {
	TargetDate time.Time           `json:"target_date"`
	Changes    []scheduleChangeDTO `json:"changes"`
}

type alertDTO struct {
	Severity string `json:"severity,omitempty"`
	Title    string `json:"title"`
	Body     string `json:"body"`
	Channel  string `json:"channel,omitempty"`
}

type actionDetailsDTO struct {
	PaymentReminder      *paymentReminderDTO      `json:"payment_reminder,omitempty"`
	LeadResponse         *leadResponseDTO         `json:"lead_response,omitempty"`
	ReviewReply          *reviewReplyDTO          `json:"review_reply,omitempty"`
	ScheduleOptimization *scheduleOptimizationDTO `json:"schedule_optimization,omitempty"`
	Alert                *alertDTO                `json:"alert,omitempty"`
}

func (d actionDetailsDTO) toModel() model.ActionDetails {
	var out model.ActionDetails

	if d.PaymentReminder != nil {
		out.PaymentReminder = &model.PaymentReminderDetails{
			RecipientID: d.PaymentReminder.RecipientID,
			Amount:      d.PaymentReminder.Amount,
			Currency:    d.PaymentReminder.Currency,
			DaysOverdue: d.PaymentReminder.DaysOverdue,
			Message:     d.PaymentReminder.Message,
		}
	}
	if d.LeadResponse != nil {
		out.LeadResponse = &model.LeadResponseDetails{
			LeadID:  d.LeadResponse.LeadID,
			Channel: d.LeadResponse.Channel,
			Message: d.LeadResponse.Message,
		}
	}
	if d.ReviewReply != nil {
		out.ReviewReply = &model.ReviewReplyDetails{
			ReviewID: d.ReviewReply.ReviewID,
			Rating:   d.ReviewReply.Rating,
			Reply:    d.ReviewReply.Reply,
		}
	}
	if d.ScheduleOptimization != nil {
		changes := make([]model.ScheduleChange, len(d.ScheduleOptimization.Changes))
		for i, c := range d.ScheduleOptimization.Changes {
			changes[i] = model.ScheduleChange{
				BookingID: c.BookingID,
				From:      c.From,
				To:        c.To,
			}
		}
		out.ScheduleOptimization = &model.ScheduleOptimizationDetails{
			TargetDate: d.ScheduleOptimization.TargetDate,
			Changes:    changes,
		}
	}
	if d.Alert != nil {
		out.Alert = &model.AlertDetails{
			Severity: d.Alert.Severity,
			Title:    d.Alert.Title,
			Body:     d.Alert.Body,
			Channel:  d.Alert.Channel,
		}
	}

	return out
}

func detailsDTO(d model.ActionDetails) actionDetailsDTO {
	var out actionDetailsDTO

	if d.PaymentReminder != nil {
		out.PaymentReminder = &paymentReminderDTO{
			RecipientID: d.PaymentReminder.RecipientID,
			Amount:      d.PaymentReminder.Amount,
			Currency:    d.PaymentReminder.Currency,
			DaysOverdue: d.PaymentReminder.DaysOverdue,
			Message:     d.PaymentReminder.Message,
		}
	}
	if d.LeadResponse != nil {
		out.LeadResponse = &leadResponseDTO{
			LeadID:  d.LeadResponse.LeadID,
			Channel: d.LeadResponse.Channel,
			Message: d.LeadResponse.Message,
		}
	}
	if d.ReviewReply != nil {
		out.ReviewReply = &reviewReplyDTO{
			ReviewID: d.ReviewReply.ReviewID,
			Rating:   d.ReviewReply.Rating,
			Reply:    d.ReviewReply.Reply,
		}
	}
	if d.ScheduleOptimization != nil {
		changes := make([]scheduleChangeDTO, len(d.ScheduleOptimization.Changes))
		for i, c := range d.ScheduleOptimization.Changes {
			changes[i] = scheduleChangeDTO{
				BookingID: c.BookingID,
				From:      c.From,
				To:        c.To,
			}
		}
		out.ScheduleOptimization = &scheduleOptimizationDTO{
			TargetDate: d.ScheduleOptimization.TargetDate,
			Changes:    changes,
		}
	}
	if d.Alert != nil {
		out.Alert = &alertDTO{
			Severity: d.Alert.Severity,
			Title:    d.Alert.Title,
			Body:     d.Alert.Body,
			Channel:  d.Alert.Channel,
		}
	}

	return out
}

type executionResultDTO struct {
	Success    bool      `json:"success"`
	Message    string    `json:"message,omitempty"`
	ExternalID string    `json:"external_id,omitempty"`
	ExecutedAt time.Time `json:"executed_at"`
}

type actionResponse struct {
	ID              string              `json:"id"`
	GoalID          string              `json:"goal_id,omitempty"`
	Type            string              `json:"type"`
	Priority        string              `json:"priority"`
	Status          string              `json:"status"`
	Details         actionDetailsDTO    `json:"details"`
	Reasoning       string              `json:"reasoning,omitempty"`
	ExecutionResult *executionResultDTO `json:"execution_result,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

func actionDTO(a *model.Action) actionResponse {
	resp := actionResponse{
		ID:        string(a.ID),
		GoalID:    string(a.GoalID),
		Type:      a.Type.String(),
		Priority:  a.Priority.String(),
		Status:    a.Status.String(),
		Details:   detailsDTO(a.Details),
		Reasoning: a.Reasoning,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
	if a.ExecutionResult != nil {
		resp.ExecutionResult = &executionResultDTO{
			Success:    a.ExecutionResult.Success,
			Message:    a.ExecutionResult.Message,
			ExternalID: a.ExecutionResult.ExternalID,
			ExecutedAt: a.ExecutionResult.ExecutedAt,
		}
	}
	return resp
}

type decisionResponse struct {
	ID            string         `json:"id"`
	Type          string         `json:"type"`
	ActionID      string         `json:"action_id,omitempty"`
	Context       map[string]any `json:"context,omitempty"`
	Decision      string         `json:"decision"`
	Reasoning     string         `json:"reasoning,omitempty"`
	Outcome       string         `json:"outcome,omitempty"`
	OwnerFeedback string         `json:"owner_feedback,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
}

func decisionDTO(d *model.Decision) decisionResponse {
	return decisionResponse{
		ID:            string(d.ID),
		Type:          d.Type.String(),
		ActionID:      string(d.ActionID),
		Context:       d.Context,
		Decision:      d.Decision,
		Reasoning:     d.Reasoning,
		Outcome:       d.Outcome,
		OwnerFeedback: d.OwnerFeedback.String(),
		CreatedAt:     d.CreatedAt,
	}
}

type preferenceResponse struct {
	ID         string    `json:"id"`
	Category   string    `json:"category"`
	Preference string    `json:"preference"`
	Confidence float64   `json:"confidence"`
	Negative   bool      `json:"negative"`
	Examples   []string  `json:"examples,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func preferenceDTO(p *model.LearnedPreference) preferenceResponse {
	return preferenceResponse{
		ID:         string(p.ID),
		Category:   p.Category.String(),
		Preference: p.Preference,
		Confidence: p.Confidence,
		Negative:   p.IsNegative(),
		Examples:   p.Examples,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

type bulkItemResponse struct {
	ActionID string          `json:"action_id"`
	Action   *actionResponse `json:"action,omitempty"`
	Error    string          `json:"error,omitempty"`
}

type bulkResponse struct {
	Results   []bulkItemResponse `json:"results"`
	Succeeded int                `json:"succeeded"`
	Failed    int                `json:"failed"`
}

func bulkDTO(r *usecase.BulkResult) bulkResponse {
	resp := bulkResponse{
		Results:   make([]bulkItemResponse, len(r.Results)),
		Succeeded: r.Succeeded(),
		Failed:    r.Failed(),
	}
	for i, item := range r.Results {
		out := bulkItemResponse{ActionID: string(item.ActionID)}
		if item.Err != nil {
			out.Error = item.Err.Error()
		} else if item.Action != nil {
			dto := actionDTO(item.Action)
			out.Action = &dto
		}
		resp.Results[i] = out
	}
	return resp
}
