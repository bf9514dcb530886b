package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/blogem/regdesk/config"
	"github.com/blogem/regdesk/models"
)

type MockSESService struct {
	mock.Mock
}

func (m *MockSESService) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	args := m.Called(ctx, params)
	if out := args.Get(0); out != nil {
		return out.(*ses.SendEmailOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestSESNotifier_Notify(t *testing.T) {
	sesMock := &MockSESService{}
	sesMock.On("SendEmail", mock.Anything, mock.MatchedBy(func(in *ses.SendEmailInput) bool {
		return in.Destination.ToAddresses[0] == "ana@example.com" &&
			aws.ToString(in.Message.Subject.Data) == "Hello" &&
			aws.ToString(in.Source) == "desk@example.com"
	})).Return(&ses.SendEmailOutput{MessageId: aws.String("m-1")}, nil)

	n := NewSESNotifier(sesMock, "desk@example.com")
	err := n.Notify(context.Background(), Notification{To: "ana@example.com", Subject: "Hello", Body: "Hi"})
	require.NoError(t, err)
	sesMock.AssertExpectations(t)
}

func TestSESNotifier_Errors(t *testing.T) {
	sesMock := &MockSESService{}
	sesMock.On("SendEmail", mock.Anything, mock.Anything).Return(nil, errors.New("throttled"))

	n := NewSESNotifier(sesMock, "desk@example.com")
	err := n.Notify(context.Background(), Notification{To: "ana@example.com"})
	assert.ErrorContains(t, err, "throttled")

	err = n.Notify(context.Background(), Notification{To: " "})
	assert.ErrorIs(t, err, ErrNoRecipient)
}

func TestLogNotifier(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	n := NewLogNotifier(zap.New(core))

	require.NoError(t, n.Notify(context.Background(), Notification{To: "ana@example.com", Subject: "s"}))
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "ana@example.com", logs.All()[0].ContextMap()["to"])
}

func TestNewWithoutSESUsesLog(t *testing.T) {
	n, err := New(context.Background(), config.NotifyConfig{}, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &LogNotifier{}, n)
}

func TestNotices(t *testing.T) {
	app := &models.Application{ID: "APP-1", ApplicantName: "Ana", ApplicantEmail: "ana@example.com", BusinessName: "Acme"}

	approve := DecisionNotice(app, &models.DecisionForm{Decision: models.DecisionApprove})
	assert.Equal(t, "ana@example.com", approve.To)
	assert.Contains(t, approve.Subject, "approved")

	reject := DecisionNotice(app, &models.DecisionForm{Decision: models.DecisionReject, ReasonCode: models.ReasonCodes[0], Notes: "see docs"})
	assert.Contains(t, reject.Body, models.ReasonCodes[0])
	assert.Contains(t, reject.Body, "see docs")

	msg := MessageNotice(app, &models.Message{Body: "Upload again please", Sender: "Rita"})
	assert.Contains(t, msg.Body, "Upload again please")
}
