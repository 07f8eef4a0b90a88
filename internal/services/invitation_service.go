package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/yukikurage/project-management-api/internal/authz"
	"github.com/yukikurage/project-management-api/internal/mail"
	"github.com/yukikurage/project-management-api/internal/metrics"
	"github.com/yukikurage/project-management-api/internal/models"
	"github.com/yukikurage/project-management-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrNoInviteEmails = errors.New("no emails provided")

// Per-recipient failure reasons.
const (
	ReasonInvalidEmail   = "Invalid email address."
	ReasonUserNotFound   = "User not found with this email on the platform."
	ReasonAlreadyMember  = "User is already a member of this organization."
	ReasonLookupFailed   = "Could not process this invitation."
	InviteStatusSent     = "Invitation email sent"
	sendFailureReasonFmt = "Failed to send invitation email: %s"
)

// InviteSuccess is one delivered invitation.
type InviteSuccess struct {
	Email  string
	Status string
}

// InviteFailure is one recipient that was skipped or could not be mailed.
type InviteFailure struct {
	Email  string
	Reason string
}

// InviteResult aggregates the outcome of one InviteUsers call.
type InviteResult struct {
	Successful []InviteSuccess
	Failed     []InviteFailure
	JoinCode   string
}

// InvitationService emails organization join codes to existing users.
type InvitationService struct {
	orgRepo  repository.OrganizationRepository
	userRepo repository.UserRepository
	mailer   mail.Mailer
	validate *validator.Validate
	log      *zap.Logger
}

// NewInvitationService creates a new InvitationService.
func NewInvitationService(orgRepo repository.OrganizationRepository, userRepo repository.UserRepository, mailer mail.Mailer, log *zap.Logger) *InvitationService {
	return &InvitationService{
		orgRepo:  orgRepo,
		userRepo: userRepo,
		mailer:   mailer,
		validate: validator.New(),
		log:      log,
	}
}

// InviteUsers sends one invitation per eligible address. Recipients are
// processed in order and independently; a failure is recorded and the next
// address is processed. Messages are sent sequentially over a single
// transport opened on first use.
func (s *InvitationService) InviteUsers(ctx context.Context, orgID, callerID uint64, emails []string) (*InviteResult, error) {
	if len(emails) == 0 {
		return nil, ErrNoInviteEmails
	}

	org, err := s.orgRepo.FindByIDWithMembers(orgID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to find organization: %w", err)
	}

	err = authz.Check(authz.ResourceOrganization, authz.ActionInvite,
		authz.Subject{UserID: callerID},
		authz.Target{Members: org.Members},
	)
	if err != nil {
		return nil, err
	}

	data := mail.InvitationData{
		OrganizationName: org.Name,
		InviterName:      inviterName(org, callerID),
		JoinCode:         org.JoinCode,
	}

	transport := &lazyTransport{mailer: s.mailer}
	defer transport.close(s.log)

	result := &InviteResult{JoinCode: org.JoinCode}
	for _, raw := range emails {
		email := NormalizeEmail(raw)

		if reason := s.checkRecipient(org, email); reason != "" {
			result.Failed = append(result.Failed, InviteFailure{Email: email, Reason: reason})
			metrics.IncrementInvitation("failed")
			continue
		}

		if err := s.send(ctx, transport, email, data); err != nil {
			s.log.Warn("invitation email failed",
				zap.Uint64("organization_id", org.ID),
				zap.String("email", email),
				zap.Error(err),
			)
			result.Failed = append(result.Failed, InviteFailure{
				Email:  email,
				Reason: fmt.Sprintf(sendFailureReasonFmt, err.Error()),
			})
			metrics.IncrementInvitation("failed")
			continue
		}

		result.Successful = append(result.Successful, InviteSuccess{Email: email, Status: InviteStatusSent})
		metrics.IncrementInvitation("sent")
	}

	return result, nil
}

// checkRecipient returns an empty string when email may be invited.
func (s *InvitationService) checkRecipient(org *models.Organization, email string) string {
	if err := s.validate.Var(email, "required,email"); err != nil {
		return ReasonInvalidEmail
	}

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ReasonUserNotFound
		}
		s.log.Error("invitation recipient lookup failed", zap.String("email", email), zap.Error(err))
		return ReasonLookupFailed
	}

	if authz.IsMember(org.Members, user.ID) {
		return ReasonAlreadyMember
	}
	return ""
}

func (s *InvitationService) send(ctx context.Context, transport *lazyTransport, email string, data mail.InvitationData) error {
	msg, err := mail.RenderInvitation(email, data)
	if err != nil {
		return err
	}

	t, err := transport.get(ctx)
	if err != nil {
		return err
	}
	return t.Send(ctx, msg)
}

func inviterName(org *models.Organization, callerID uint64) string {
	for _, m := range org.Members {
		if m.UserID == callerID && m.User.Name != "" {
			return m.User.Name
		}
	}
	if org.CreatedBy.Name != "" {
		return org.CreatedBy.Name
	}
	return "An administrator"
}

// lazyTransport opens the mail transport at most once. An open failure is
// kept and returned for every later recipient without reconnecting.
type lazyTransport struct {
	mailer    mail.Mailer
	transport mail.Transport
	err       error
	opened    bool
}

func (l *lazyTransport) get(ctx context.Context) (mail.Transport, error) {
	if !l.opened {
		l.opened = true
		l.transport, l.err = l.mailer.Open(ctx)
	}
	return l.transport, l.err
}

func (l *lazyTransport) close(log *zap.Logger) {
	if l.transport == nil {
		return
	}
	if err := l.transport.Close(); err != nil {
		log.Warn("failed to close mail transport", zap.Error(err))
	}
}
