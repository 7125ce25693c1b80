package services

import (
	"fmt"
	"log"
	"strings"

	"asset-backend/internal/events"
	"asset-backend/internal/mail"
	"asset-backend/internal/models"
	"asset-backend/internal/whatsapp"
)

// NotificationService turns domain events into WhatsApp and email
// notifications. It runs on the dispatcher's delivery goroutine, so
// state machines never wait on a messaging API.
type NotificationService struct {
	WhatsApp whatsapp.Provider
	Mailer   *mail.Mailer

	// Recipients per concern. Approver contacts get review-stage events,
	// warehouse contacts get fulfillment events.
	ApproverPhones  []string
	ApproverEmails  []string
	WarehousePhones []string
	WarehouseEmails []string
}

func NewNotificationService(provider whatsapp.Provider, mailer *mail.Mailer) *NotificationService {
	return &NotificationService{WhatsApp: provider, Mailer: mailer}
}

// CanHandle reports which event types this service consumes
func (s *NotificationService) CanHandle(eventType string) bool {
	switch eventType {
	case events.RequestCreatedEvent, events.RequestReviewedEvent,
		events.RequestRejectedEvent, events.RequestStatusChangedEvent,
		events.RequestCompletedEvent, events.LoanCreatedEvent,
		events.LoanDecidedEvent:
		return true
	}
	return false
}

// Handle formats and fans out one event. Failed sends are logged per
// recipient and never fail the whole event.
func (s *NotificationService) Handle(event events.Event) error {
	subject, body, phones, emails := s.compose(event)
	if body == "" {
		return nil
	}

	if s.WhatsApp != nil {
		for _, phone := range phones {
			if err := s.WhatsApp.SendMessage(phone, body); err != nil {
				log.Printf("[Notifications] WhatsApp to %s failed: %v", phone, err)
			}
		}
	}
	if s.Mailer != nil && len(emails) > 0 {
		html := "<p>" + strings.ReplaceAll(body, "\n", "<br>") + "</p>"
		if err := s.Mailer.Send(emails, subject, html); err != nil {
			log.Printf("[Notifications] mail failed: %v", err)
		}
	}
	return nil
}

func (s *NotificationService) compose(event events.Event) (subject, body string, phones, emails []string) {
	switch data := event.Data.(type) {
	case events.RequestCreated:
		req := data.Request
		if req.Status == models.RequestStatusPending {
			subject = fmt.Sprintf("New purchase request %s", req.DocNumber)
			body = fmt.Sprintf("Purchase request %s (%s) from %s, %s needs review: %d item(s).",
				req.DocNumber, req.ID, req.Requester, req.Division, len(req.Items))
			phones, emails = s.ApproverPhones, s.ApproverEmails
		} else {
			subject = fmt.Sprintf("Request %s fulfilled from stock", req.DocNumber)
			body = fmt.Sprintf("Request %s from %s was fully allocated from storage and awaits handover.",
				req.DocNumber, req.Requester)
			phones, emails = s.WarehousePhones, s.WarehouseEmails
		}

	case events.RequestReviewed:
		req := data.Request
		subject = fmt.Sprintf("Request %s reviewed", req.DocNumber)
		body = fmt.Sprintf("Request %s was reviewed by %s and is now %s.",
			req.DocNumber, data.Reviewer, req.Status)
		phones, emails = s.ApproverPhones, s.ApproverEmails

	case events.RequestRejected:
		req := data.Request
		subject = fmt.Sprintf("Request %s rejected", req.DocNumber)
		body = fmt.Sprintf("Request %s was rejected by %s: %s",
			req.DocNumber, data.RejectedBy, data.Reason)
		phones, emails = s.ApproverPhones, s.ApproverEmails

	case events.RequestStatusChanged:
		req := data.Request
		subject = fmt.Sprintf("Request %s: %s", req.DocNumber, req.Status)
		body = fmt.Sprintf("Request %s moved from %s to %s by %s.",
			req.DocNumber, data.From, data.To, data.Actor)
		phones, emails = s.WarehousePhones, s.WarehouseEmails

	case events.LoanDecided:
		loan := data.Loan
		switch event.Type {
		case events.LoanCreatedEvent:
			subject = fmt.Sprintf("New loan request %s", loan.DocNumber)
			body = fmt.Sprintf("Loan request %s from %s needs a decision.",
				loan.DocNumber, loan.Borrower)
			phones, emails = s.ApproverPhones, s.ApproverEmails
		default:
			subject = fmt.Sprintf("Loan %s: %s", loan.DocNumber, loan.Status)
			body = fmt.Sprintf("Loan %s for %s is now %s.",
				loan.DocNumber, loan.Borrower, loan.Status)
			phones, emails = s.WarehousePhones, s.WarehouseEmails
		}
	}
	return subject, body, phones, emails
}
