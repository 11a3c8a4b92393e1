package compliance

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"brickgate/internal/audit"
	"brickgate/internal/authorization"
	"brickgate/internal/compliance/store"
	"brickgate/internal/domain"
	"brickgate/internal/registry"
	id "brickgate/pkg/domain"
	dErrors "brickgate/pkg/domain-errors"
)

const (
	serviceOwner  = id.Address("0x00000000000000000000000000000000000000ee")
	serviceWallet = id.Address("0x00000000000000000000000000000000000000aa")
)

type ServiceSuite struct {
	suite.Suite
	client      *registry.MemoryClient
	submissions *store.MemoryStore
	sink        *audit.MemorySink
	service     *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.client = registry.NewMemoryClient(serviceOwner)
	s.submissions = store.NewMemory()
	s.sink = audit.NewMemorySink()

	now := time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)
	validator := NewValidator(testEligibility)
	validator.now = func() time.Time { return now }

	s.service = New(
		validator,
		s.submissions,
		s.client,
		registry.NewSnapshotter(s.client),
		WithAuditPublisher(audit.NewPublisher(s.sink)),
		WithClock(func() time.Time { return now }),
	)
}

func (s *ServiceSuite) submit() domain.Submission {
	submission, err := s.service.Submit(context.Background(), serviceWallet, compliantProfile(), hasherDocuments())
	s.Require().NoError(err)
	return submission
}

func (s *ServiceSuite) TestSubmitStoresLocallyAndWritesRegistry() {
	ctx := context.Background()
	submission := s.submit()
	s.Require().False(submission.Commitment.IsZero())

	stored, err := s.submissions.Find(ctx, serviceWallet)
	s.Require().NoError(err)
	s.Equal(submission.Commitment, stored.Commitment)

	request, err := s.client.GetRequest(ctx, serviceWallet)
	s.Require().NoError(err)
	s.True(request.Exists)
	s.Equal(submission.Commitment, request.Commitment)

	events := s.sink.Events()
	s.Require().Len(events, 1)
	s.Equal(audit.ActionKYCSubmitted, events[0].Action)
	s.NotEmpty(events[0].TxHash)
}

func (s *ServiceSuite) TestSubmitRejectsInvalidProfileBeforeAnyWrite() {
	ctx := context.Background()
	profile := compliantProfile()
	profile.Nationality = "DE"

	_, err := s.service.Submit(ctx, serviceWallet, profile, hasherDocuments())
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))

	_, err = s.submissions.Find(ctx, serviceWallet)
	s.ErrorIs(err, store.ErrNotFound)

	request, err := s.client.GetRequest(ctx, serviceWallet)
	s.Require().NoError(err)
	s.False(request.Exists)
}

func (s *ServiceSuite) TestSubmitRequiresDocuments() {
	documents := hasherDocuments()
	delete(documents, domain.SlotProofOfAddress)

	_, err := s.service.Submit(context.Background(), serviceWallet, compliantProfile(), documents)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeMissingDocuments))
}

func (s *ServiceSuite) TestSubmitKeepsLocalRecordWhenRegistryFails() {
	ctx := context.Background()
	s.client.FailOnce("SubmitRequest", dErrors.New(dErrors.CodeRemoteCall, "node unreachable"))

	_, err := s.service.Submit(ctx, serviceWallet, compliantProfile(), hasherDocuments())
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeRemoteCall))

	// The local write happened before the network call.
	_, err = s.submissions.Find(ctx, serviceWallet)
	s.NoError(err)
}

func (s *ServiceSuite) TestStatusWithoutRequest() {
	status, err := s.service.Status(context.Background(), serviceWallet)
	s.Require().NoError(err)
	s.Equal(authorization.NoRequest, status.State)
	s.Equal(authorization.SeverityWarn, status.Severity)
	s.False(status.CommitmentMatch)
}

func (s *ServiceSuite) TestStatusAfterSubmitIsPendingWithMatchingCommitment() {
	submission := s.submit()

	status, err := s.service.Status(context.Background(), serviceWallet)
	s.Require().NoError(err)
	s.Equal(authorization.Pending, status.State)
	s.Equal(submission.Commitment, status.Commitment)
	s.True(status.CommitmentMatch)
}

func (s *ServiceSuite) TestStatusFlagsEditedProfileAsMismatch() {
	ctx := context.Background()
	submission := s.submit()

	// Edit the local profile after the registry write.
	submission.Profile.City = "Lyon"
	s.Require().NoError(s.submissions.Save(ctx, submission))

	status, err := s.service.Status(ctx, serviceWallet)
	s.Require().NoError(err)
	s.False(status.CommitmentMatch)
}

func (s *ServiceSuite) TestStatusReflectsApprovalAndVerification() {
	ctx := context.Background()
	s.submit()

	_, err := s.client.ApproveRequest(ctx, serviceWallet)
	s.Require().NoError(err)
	_, err = s.client.VerifyInvestor(ctx, serviceWallet)
	s.Require().NoError(err)

	status, err := s.service.Status(ctx, serviceWallet)
	s.Require().NoError(err)
	s.Equal(authorization.ApprovedVerified, status.State)
	s.Equal(authorization.SeverityOK, status.Severity)
	s.True(status.CommitmentMatch)
}
