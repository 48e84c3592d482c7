package registration

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/makingkings/mentorship-api/internal/lib/mailer"
	"github.com/makingkings/mentorship-api/internal/models"
	"github.com/makingkings/mentorship-api/internal/storage/repository"
)

// Мок для Repository
type RepoMock struct {
	mock.Mock
	db *sql.DB
}

func (m *RepoMock) BeginTx(ctx context.Context) (*sql.Tx, error) {
	args := m.Called(ctx)
	if args.Error(0) != nil {
		return nil, args.Error(0)
	}
	return m.db.Begin()
}

func (m *RepoMock) CreateUserTx(ctx context.Context, tx *sql.Tx, user models.User) (string, error) {
	args := m.Called(ctx, tx, user)
	return args.String(0), args.Error(1)
}

func (m *RepoMock) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *RepoMock) GetProgram(ctx context.Context, id string) (*models.Program, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Program), args.Error(1)
}

// Мок для mailer.Sender
type SenderMock struct {
	mock.Mock
}

func (m *SenderMock) Send(ctx context.Context, msg mailer.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func validRequest() models.DummyRegister {
	return models.DummyRegister{
		FirstName:    "Ada",
		LastName:     "Obi",
		Email:        "ada@example.com",
		PhoneCountry: "+234",
		PhoneNumber:  "8012345678",
		Country:      "Nigeria",
		City:         "Lagos",
		Gender:       "Female",
		ProgramID:    "11111111-1111-1111-1111-111111111111",
	}
}

func TestRegistrationService_Register(t *testing.T) {
	program := &models.Program{ID: "11111111-1111-1111-1111-111111111111", Name: "Mentorship for Singles"}

	tests := []struct {
		name       string
		setupMocks func(r *RepoMock, s *SenderMock, sqlMock sqlmock.Sqlmock)
		wantErr    error
		wantCommit bool
	}{
		{
			name: "successful registration commits after email",
			setupMocks: func(r *RepoMock, s *SenderMock, sqlMock sqlmock.Sqlmock) {
				r.On("GetProgram", mock.Anything, program.ID).Return(program, nil).Once()
				sqlMock.ExpectBegin()
				r.On("BeginTx", mock.Anything).Return(nil).Once()
				r.On("CreateUserTx", mock.Anything, mock.Anything, mock.MatchedBy(func(u models.User) bool {
					return u.Email == "ada@example.com" &&
						u.Role == models.RoleUser &&
						u.PhoneNumber == "+2348012345678" &&
						u.Password == u.Email
				})).Return("user-1", nil).Once()
				s.On("Send", mock.Anything, mock.MatchedBy(func(msg mailer.Message) bool {
					return msg.Subject == "Welcome" && msg.To[0] == "ada@example.com"
				})).Return(nil).Once()
				sqlMock.ExpectCommit()
			},
			wantCommit: true,
		},
		{
			name: "duplicate email aborts before send",
			setupMocks: func(r *RepoMock, s *SenderMock, sqlMock sqlmock.Sqlmock) {
				r.On("GetProgram", mock.Anything, program.ID).Return(program, nil).Once()
				sqlMock.ExpectBegin()
				r.On("BeginTx", mock.Anything).Return(nil).Once()
				r.On("CreateUserTx", mock.Anything, mock.Anything, mock.Anything).
					Return("", repository.ErrEmailTaken).Once()
				sqlMock.ExpectRollback()
			},
			wantErr: repository.ErrEmailTaken,
		},
		{
			name: "unknown program rejected before transaction",
			setupMocks: func(r *RepoMock, _ *SenderMock, _ sqlmock.Sqlmock) {
				r.On("GetProgram", mock.Anything, program.ID).Return(nil, repository.ErrNotFound).Once()
			},
			wantErr: repository.ErrNotFound,
		},
		{
			name: "email failure rolls back user insert",
			setupMocks: func(r *RepoMock, s *SenderMock, sqlMock sqlmock.Sqlmock) {
				r.On("GetProgram", mock.Anything, program.ID).Return(program, nil).Once()
				sqlMock.ExpectBegin()
				r.On("BeginTx", mock.Anything).Return(nil).Once()
				r.On("CreateUserTx", mock.Anything, mock.Anything, mock.Anything).Return("user-1", nil).Once()
				s.On("Send", mock.Anything, mock.Anything).Return(mailer.ErrSendFailed).Once()
				sqlMock.ExpectRollback()
			},
			wantErr: mailer.ErrSendFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, sqlMock, err := sqlmock.New()
			require.NoError(t, err)
			defer func() {
				_ = db.Close()
			}()

			repoMock := &RepoMock{db: db}
			senderMock := new(SenderMock)
			tt.setupMocks(repoMock, senderMock, sqlMock)

			service := NewRegistrationService(repoMock, senderMock, newNoopLogger())
			user, err := service.Register(context.Background(), validRequest())

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "user-1", user.ID)
			}
			assert.NoError(t, sqlMock.ExpectationsWereMet())
			repoMock.AssertExpectations(t)
			senderMock.AssertExpectations(t)
		})
	}
}

func TestRegistrationService_ResendWelcome(t *testing.T) {
	user := &models.User{ID: "user-1", Email: "ada@example.com", FirstName: "Ada"}

	t.Run("resend to existing user", func(t *testing.T) {
		repoMock := &RepoMock{}
		senderMock := new(SenderMock)
		repoMock.On("GetUserByEmail", mock.Anything, user.Email).Return(user, nil).Once()
		senderMock.On("Send", mock.Anything, mock.Anything).Return(nil).Once()

		service := NewRegistrationService(repoMock, senderMock, newNoopLogger())
		got, err := service.ResendWelcome(context.Background(), user.Email)
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
	})

	t.Run("unknown user", func(t *testing.T) {
		repoMock := &RepoMock{}
		senderMock := new(SenderMock)
		repoMock.On("GetUserByEmail", mock.Anything, "nobody@example.com").
			Return(nil, repository.ErrNotFound).Once()

		service := NewRegistrationService(repoMock, senderMock, newNoopLogger())
		_, err := service.ResendWelcome(context.Background(), "nobody@example.com")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}
