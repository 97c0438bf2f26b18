package commands

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"collector_dao/configs"
	"collector_dao/internal/db/models"
	mock_repositories "collector_dao/internal/db/repositories/mocks"
	"collector_dao/internal/governance"

	"github.com/ethereum/go-ethereum/common"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

const chatID = int64(42)

var (
	member   = common.HexToAddress("0x00000000000000000000000000000000000000aa")
	outsider = common.HexToAddress("0x00000000000000000000000000000000000000bb")
)

type fakeReader struct {
	proposals map[common.Hash]*governance.Proposal
	states    map[common.Hash]governance.ProposalState
	err       error
}

func (r *fakeReader) Proposal(_ context.Context, id common.Hash) (*governance.Proposal, error) {
	if r.err != nil {
		return nil, r.err
	}
	proposal, ok := r.proposals[id]
	if !ok {
		return nil, governance.ErrUnknownProposal
	}
	return proposal, nil
}

func (r *fakeReader) State(_ context.Context, id common.Hash) (governance.ProposalState, error) {
	if r.err != nil {
		return governance.StateUnknown, r.err
	}
	state, ok := r.states[id]
	if !ok {
		return governance.StateUnknown, governance.ErrUnknownProposal
	}
	return state, nil
}

func (r *fakeReader) Treasury(context.Context) (*big.Int, error) {
	return big.NewInt(300), r.err
}

func newProposal(seed byte, forVotes uint64) *governance.Proposal {
	return &governance.Proposal{
		ID:             common.Hash{seed},
		Proposer:       member,
		CreationHeight: 7,
		ForVotes:       forVotes,
		Bundle: governance.Bundle{
			Targets:   []common.Address{outsider},
			Values:    []*big.Int{big.NewInt(1)},
			Calldatas: [][]byte{{}},
		},
	}
}

func text(t *testing.T, messages []tgbotapi.Chattable) string {
	t.Helper()
	require.Len(t, messages, 1)
	message, ok := messages[0].(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Equal(t, chatID, message.ChatID)
	return message.Text
}

func TestStartCommand_Handle(t *testing.T) {
	command := NewStartCommand(configs.Logger{AppName: "collector_dao"})

	assert.True(t, command.CanHandle("start"))
	assert.False(t, command.CanHandle("state"))

	messages := command.Handle(context.Background(), "", chatID)
	message := messages[0].(tgbotapi.MessageConfig)
	assert.Equal(t, tgbotapi.ModeMarkdownV2, message.ParseMode)
	assert.Contains(t, message.Text, "*Menu*")
	assert.Contains(t, message.Text, "/pending\\_proposals")
}

func TestStateCommand_Handle(t *testing.T) {
	proposal := newProposal(1, 3)
	reader := &fakeReader{
		proposals: map[common.Hash]*governance.Proposal{proposal.ID: proposal},
		states:    map[common.Hash]governance.ProposalState{proposal.ID: governance.StateSucceeded},
	}
	command := NewStateCommand(reader, zap.NewNop().Sugar())

	out := text(t, command.Handle(context.Background(), proposal.ID.Hex(), chatID))
	assert.Contains(t, out, "State: Succeeded")
	assert.Contains(t, out, "for 3 / against 0 / abstain 0")

	out = text(t, command.Handle(context.Background(), common.Hash{9}.Hex(), chatID))
	assert.Contains(t, out, "does not exist")

	out = text(t, command.Handle(context.Background(), "0x1234", chatID))
	assert.Equal(t, "Usage: /state <proposal id>", out)

	reader.err = errors.New("boom")
	out = text(t, command.Handle(context.Background(), proposal.ID.Hex(), chatID))
	assert.Equal(t, "Something went wrong, please try again", out)
}

func TestMemberCommand_Handle(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	memberRepo := mock_repositories.NewMockMemberRepository(ctrl)
	memberRepo.EXPECT().GetOne(gomock.Any(), member.Hex()).
		Return(models.NewMember(governance.Member{Address: member, JoinedAt: 12, FeePaid: big.NewInt(100)}), nil)
	memberRepo.EXPECT().GetOne(gomock.Any(), outsider.Hex()).Return(nil, nil)

	command := NewMemberCommand(memberRepo, zap.NewNop().Sugar())

	assert.Equal(t, member.Hex()+" is a member since block 12, fee paid: 100 wei",
		text(t, command.Handle(context.Background(), member.Hex(), chatID)))
	assert.Contains(t, text(t, command.Handle(context.Background(), " "+outsider.Hex(), chatID)), "is not a member")
	assert.Equal(t, "Usage: /member <address>", text(t, command.Handle(context.Background(), "nobody", chatID)))
}

func TestMemberCommand_UnreadableRecord(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	broken := models.NewMember(governance.Member{Address: member})
	broken.FeePaid = "lots"

	memberRepo := mock_repositories.NewMockMemberRepository(ctrl)
	memberRepo.EXPECT().GetOne(gomock.Any(), member.Hex()).Return(broken, nil)
	memberRepo.EXPECT().GetOne(gomock.Any(), outsider.Hex()).Return(nil, errors.New("db down"))

	command := NewMemberCommand(memberRepo, zap.NewNop().Sugar())

	assert.Equal(t, "Something went wrong, please try again", text(t, command.Handle(context.Background(), member.Hex(), chatID)))
	assert.Equal(t, "Something went wrong, please try again", text(t, command.Handle(context.Background(), outsider.Hex(), chatID)))
}

func TestTreasuryCommand_Handle(t *testing.T) {
	command := NewTreasuryCommand(&fakeReader{}, zap.NewNop().Sugar())

	assert.Equal(t, "Membership fees collected: 300 wei", text(t, command.Handle(context.Background(), "", chatID)))
}

func TestPendingProposalsCommand_ListsOnlyActive(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	active, resolved := newProposal(1, 2), newProposal(2, 5)
	reader := &fakeReader{
		states: map[common.Hash]governance.ProposalState{
			active.ID:   governance.StateActive,
			resolved.ID: governance.StateDefeated,
		},
	}

	activeModel := models.NewProposal(active)
	activeModel.CreatedAt = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	proposalRepo := mock_repositories.NewMockProposalRepository(ctrl)
	proposalRepo.EXPECT().GetManyNotExecuted(gomock.Any()).Return([]*models.Proposal{
		activeModel,
		models.NewProposal(resolved),
	}, nil)

	command := NewPendingProposalsCommand(proposalRepo, reader, zap.NewNop().Sugar())
	out := text(t, command.Handle(context.Background(), "", chatID))

	assert.Contains(t, out, "for 2 / against 0 / abstain 0")
	assert.NotContains(t, out, "for 5")
	assert.Contains(t, out, "Actions: 1, created at block 7 on 2024-03-01 10:00 UTC")
}

func TestPendingProposalsCommand_NoneActive(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	proposalRepo := mock_repositories.NewMockProposalRepository(ctrl)
	proposalRepo.EXPECT().GetManyNotExecuted(gomock.Any()).Return([]*models.Proposal{}, nil)

	command := NewPendingProposalsCommand(proposalRepo, &fakeReader{}, zap.NewNop().Sugar())
	assert.Equal(t, "No proposals are open for voting", text(t, command.Handle(context.Background(), "", chatID)))
}

func TestPendingProposalsCommand_RepositoryError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	proposalRepo := mock_repositories.NewMockProposalRepository(ctrl)
	proposalRepo.EXPECT().GetManyNotExecuted(gomock.Any()).Return(nil, errors.New("db down"))

	command := NewPendingProposalsCommand(proposalRepo, &fakeReader{}, zap.NewNop().Sugar())
	assert.Equal(t, "Something went wrong, please try again", text(t, command.Handle(context.Background(), "", chatID)))
}
