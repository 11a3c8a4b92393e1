package admin

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"brickgate/internal/audit"
	"brickgate/internal/authorization"
	"brickgate/internal/domain"
	"brickgate/internal/registry"
	id "brickgate/pkg/domain"
	dErrors "brickgate/pkg/domain-errors"
)

const (
	ownerWallet    = id.Address("0x00000000000000000000000000000000000000ee")
	investorWallet = id.Address("0x00000000000000000000000000000000000000aa")
)

// submissionsStub satisfies SubmissionLister with a fixed slice.
type submissionsStub struct {
	submissions []domain.Submission
}

func (s submissionsStub) ListSubmissions(context.Context) ([]domain.Submission, error) {
	return s.submissions, nil
}

type AdminSuite struct {
	suite.Suite
	client *registry.MemoryClient
	sink   *audit.MemorySink
	lister *submissionsStub
	admin  *Service
}

func TestAdminSuite(t *testing.T) {
	suite.Run(t, new(AdminSuite))
}

func (s *AdminSuite) SetupTest() {
	s.client = registry.NewMemoryClient(ownerWallet)
	s.sink = audit.NewMemorySink()
	s.lister = &submissionsStub{}
	s.admin = New(
		s.client,
		registry.NewSnapshotter(s.client),
		s.lister,
		WithAuditPublisher(audit.NewPublisher(s.sink)),
	)
}

// seed drives the memory client into a named starting state.
func (s *AdminSuite) seed(state authorization.State, wallet id.Address) {
	ctx := context.Background()
	if state == authorization.NoRequest {
		return
	}
	_, err := s.client.SubmitRequest(ctx, wallet, "0x01")
	s.Require().NoError(err)
	switch state {
	case authorization.Rejected:
		_, err = s.client.RejectRequest(ctx, wallet)
		s.Require().NoError(err)
	case authorization.ApprovedFrozen:
		_, err = s.client.ApproveRequest(ctx, wallet)
		s.Require().NoError(err)
	case authorization.ApprovedVerified:
		_, err = s.client.ApproveRequest(ctx, wallet)
		s.Require().NoError(err)
		_, err = s.client.VerifyInvestor(ctx, wallet)
		s.Require().NoError(err)
	}
}

func (s *AdminSuite) resolve(wallet id.Address) authorization.State {
	snapshot, err := registry.NewSnapshotter(s.client).Fetch(context.Background(), wallet)
	s.Require().NoError(err)
	return authorization.Resolve(snapshot)
}

func (s *AdminSuite) TestGuardTable() {
	type actionFn func(ctx context.Context, actor, wallet id.Address) (ApplyReport, error)

	actions := []struct {
		name      string
		run       func(*Service) actionFn
		legalFrom map[authorization.State]bool
	}{
		{
			name: "approve_and_whitelist",
			run:  func(svc *Service) actionFn { return svc.ApproveAndWhitelist },
			legalFrom: map[authorization.State]bool{
				authorization.Pending:  true,
				authorization.Rejected: true,
			},
		},
		{
			name: "reject_and_revoke",
			run:  func(svc *Service) actionFn { return svc.RejectAndRevoke },
			legalFrom: map[authorization.State]bool{
				authorization.Pending:          true,
				authorization.Rejected:         true,
				authorization.ApprovedFrozen:   true,
				authorization.ApprovedVerified: true,
			},
		},
		{
			name: "freeze",
			run:  func(svc *Service) actionFn { return svc.Freeze },
			legalFrom: map[authorization.State]bool{
				authorization.ApprovedVerified: true,
			},
		},
		{
			name: "rewhitelist",
			run:  func(svc *Service) actionFn { return svc.ReWhitelist },
			legalFrom: map[authorization.State]bool{
				authorization.ApprovedFrozen: true,
			},
		},
	}

	states := []authorization.State{
		authorization.NoRequest,
		authorization.Pending,
		authorization.Rejected,
		authorization.ApprovedFrozen,
		authorization.ApprovedVerified,
	}

	for _, action := range actions {
		for _, state := range states {
			s.Run(action.name+"_from_"+string(state), func() {
				s.SetupTest()
				s.seed(state, investorWallet)

				report, err := action.run(s.admin)(context.Background(), ownerWallet, investorWallet)
				if action.legalFrom[state] {
					s.NoError(err)
					s.Equal(FullyApplied, report.Outcome)
				} else {
					s.Require().Error(err)
					s.True(dErrors.HasCode(err, dErrors.CodeIllegalTransition))
					s.Equal(NotApplied, report.Outcome)
					s.Empty(report.Receipts)
				}
			})
		}
	}
}

func (s *AdminSuite) TestApproveAndWhitelistReachesVerified() {
	s.seed(authorization.Pending, investorWallet)

	report, err := s.admin.ApproveAndWhitelist(context.Background(), ownerWallet, investorWallet)
	s.Require().NoError(err)
	s.Equal(FullyApplied, report.Outcome)
	s.Len(report.Receipts, 2)
	s.Equal(authorization.ApprovedVerified, s.resolve(investorWallet))

	events := s.sink.Events()
	s.Require().Len(events, 1)
	s.Equal(audit.ActionKYCApproved, events[0].Action)
	s.Equal(string(FullyApplied), events[0].Outcome)
	s.Equal(ownerWallet, events[0].Actor)
}

func (s *AdminSuite) TestFreezeThenReWhitelistRoundTrip() {
	ctx := context.Background()
	s.seed(authorization.ApprovedVerified, investorWallet)

	report, err := s.admin.Freeze(ctx, ownerWallet, investorWallet)
	s.Require().NoError(err)
	s.Equal(FullyApplied, report.Outcome)
	s.Equal(authorization.ApprovedFrozen, s.resolve(investorWallet))

	report, err = s.admin.ReWhitelist(ctx, ownerWallet, investorWallet)
	s.Require().NoError(err)
	s.Equal(FullyApplied, report.Outcome)
	s.Equal(authorization.ApprovedVerified, s.resolve(investorWallet))
}

func (s *AdminSuite) TestSecondWriteFailureIsPartiallyApplied() {
	s.seed(authorization.Pending, investorWallet)
	s.client.FailOnce("VerifyInvestor", dErrors.New(dErrors.CodeRemoteCall, "tx reverted"))

	report, err := s.admin.ApproveAndWhitelist(context.Background(), ownerWallet, investorWallet)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodePartiallyApplied))
	s.Equal(PartiallyApplied, report.Outcome)
	s.Equal(StepVerifyInvestor, report.FailedStep)
	s.Len(report.Receipts, 1)

	// The first write landed: the wallet resolves to the unintended but
	// legitimate approved-not-verified state.
	s.Equal(authorization.ApprovedFrozen, s.resolve(investorWallet))

	events := s.sink.Events()
	s.Require().Len(events, 1)
	s.Equal(string(PartiallyApplied), events[0].Outcome)
	s.Contains(events[0].Reason, "verify_investor")
}

func (s *AdminSuite) TestFirstWriteFailureIsNotApplied() {
	s.seed(authorization.Pending, investorWallet)
	s.client.FailOnce("ApproveRequest", dErrors.New(dErrors.CodeRemoteCall, "tx reverted"))

	report, err := s.admin.ApproveAndWhitelist(context.Background(), ownerWallet, investorWallet)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeRemoteCall))
	s.False(dErrors.HasCode(err, dErrors.CodePartiallyApplied))
	s.Equal(NotApplied, report.Outcome)
	s.Empty(report.Receipts)
	s.Equal(authorization.Pending, s.resolve(investorWallet))
}

func (s *AdminSuite) TestRequireAdmin() {
	ctx := context.Background()

	s.NoError(s.admin.RequireAdmin(ctx, ownerWallet))

	// case-insensitive match against the registry owner
	upper := id.Address("0x00000000000000000000000000000000000000EE")
	s.NoError(s.admin.RequireAdmin(ctx, upper))

	err := s.admin.RequireAdmin(ctx, investorWallet)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeForbidden))

	err = s.admin.RequireAdmin(ctx, id.ZeroAddress)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func (s *AdminSuite) TestReviewQueueBucketsByState() {
	ctx := context.Background()

	pending := id.Address("0x0000000000000000000000000000000000000001")
	rejected := id.Address("0x0000000000000000000000000000000000000002")
	frozen := id.Address("0x0000000000000000000000000000000000000003")
	verified := id.Address("0x0000000000000000000000000000000000000004")
	noRequest := id.Address("0x0000000000000000000000000000000000000005")

	s.seed(authorization.Pending, pending)
	s.seed(authorization.Rejected, rejected)
	s.seed(authorization.ApprovedFrozen, frozen)
	s.seed(authorization.ApprovedVerified, verified)

	now := time.Now()
	for _, wallet := range []id.Address{pending, rejected, frozen, verified, noRequest} {
		s.lister.submissions = append(s.lister.submissions, domain.Submission{
			Wallet:      wallet,
			Commitment:  "0x01",
			SubmittedAt: now,
		})
	}

	queue, err := s.admin.ReviewQueue(ctx)
	s.Require().NoError(err)

	s.Len(queue.Pending, 2) // pending + local-only submission
	s.Len(queue.Rejected, 1)
	s.Len(queue.Approved, 2)

	s.Equal(rejected, queue.Rejected[0].Wallet)
	s.Equal(authorization.SeverityDanger, queue.Rejected[0].Severity)
}
