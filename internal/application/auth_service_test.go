package application

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/timbr/internal/domain/entity"
	"github.com/oksasatya/timbr/pkg/mailer"
	mailtpl "github.com/oksasatya/timbr/pkg/mailer/templates"
)

func TestSignup_BuyerGetsProfileAndEmptyPreferences(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	res, err := e.auth.Signup(ctx, SignupInput{
		Email: "buyer@example.com", Password: "secret1", DisplayName: "Bea", Role: entity.RoleBuyer,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, entity.RoleBuyer, res.User.Role)
	assert.NotEqual(t, "secret1", res.User.PasswordHash)

	assert.Equal(t, 1, e.store.BuyerProfilesFor(res.User.ID))
	buyerID, err := e.store.Preferences().BuyerIDForUser(ctx, res.User.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, e.store.PreferenceCount(buyerID))

	pref, err := e.prefs.Get(ctx, res.User.ID)
	require.NoError(t, err)
	require.NotNil(t, pref)
	assert.Equal(t, entity.PreferenceCriteria{}, pref.PreferenceCriteria)
}

func TestSignup_SellerAndAgentGetNoPreferences(t *testing.T) {
	e := newEnv(t)
	for _, role := range []entity.Role{entity.RoleSeller, entity.RoleAgent} {
		u := e.signup(t, string(role)+"@example.com", role)
		_, err := e.prefs.Get(context.Background(), u.ID)
		assert.ErrorIs(t, err, ErrBuyerProfileNotFound)
	}
}

func TestSignup_DuplicateEmail(t *testing.T) {
	e := newEnv(t)
	e.signup(t, "dup@example.com", entity.RoleBuyer)

	_, err := e.auth.Signup(context.Background(), SignupInput{
		Email: "dup@example.com", Password: "another1", DisplayName: "Other", Role: entity.RoleSeller,
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestSignup_RejectsBadInput(t *testing.T) {
	e := newEnv(t)
	cases := map[string]SignupInput{
		"short password": {Email: "a@b.co", Password: "12345", DisplayName: "A", Role: entity.RoleBuyer},
		"no name":        {Email: "a@b.co", Password: "123456", Role: entity.RoleBuyer},
		"bad role":       {Email: "a@b.co", Password: "123456", DisplayName: "A", Role: "ADMIN"},
		"no email":       {Password: "123456", DisplayName: "A", Role: entity.RoleBuyer},
		"long password":  {Email: "a@b.co", Password: strings.Repeat("p", 73), DisplayName: "A", Role: entity.RoleBuyer},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := e.auth.Signup(context.Background(), in)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestSignup_EnqueuesWelcomeEmail(t *testing.T) {
	e := newEnv(t)
	u := e.signup(t, "hi@example.com", entity.RoleAgent)

	require.Len(t, e.mail.jobs, 1)
	job, ok := e.mail.jobs[0].(mailer.EmailJob)
	require.True(t, ok)
	assert.Equal(t, u.Email, job.To)
	assert.Equal(t, mailtpl.Welcome, job.Template)
	assert.Equal(t, "AGENT", job.Data["Role"])
}

func TestSignup_MailFailureDoesNotFailSignup(t *testing.T) {
	e := newEnv(t)
	e.mail.err = errors.New("broker unreachable")

	_, err := e.auth.Signup(context.Background(), SignupInput{
		Email: "ok@example.com", Password: "secret1", DisplayName: "Ok", Role: entity.RoleBuyer,
	})
	assert.NoError(t, err)
}

func TestSignup_MailDisabled(t *testing.T) {
	e := newEnv(t)
	e.auth.Config.MailSendEnabled = false
	e.signup(t, "quiet@example.com", entity.RoleBuyer)
	assert.Empty(t, e.mail.jobs)
}

func TestLogin(t *testing.T) {
	e := newEnv(t)
	u := e.signup(t, "login@example.com", entity.RoleBuyer)
	ctx := context.Background()

	res, err := e.auth.Login(ctx, "login@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, u.ID, res.User.ID)

	_, err = e.auth.Login(ctx, "login@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = e.auth.Login(ctx, "nobody@example.com", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestResolveToken(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	res, err := e.auth.Signup(ctx, SignupInput{
		Email: "tok@example.com", Password: "secret1", DisplayName: "Tok", Role: entity.RoleBuyer,
	})
	require.NoError(t, err)

	u, err := e.auth.ResolveToken(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, u.ID)

	_, err = e.auth.ResolveToken(ctx, res.Token+"x")
	assert.ErrorIs(t, err, ErrTokenInvalid)

	e.store.Users().Delete(ctx, res.User.ID)
	_, err = e.auth.ResolveToken(ctx, res.Token)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
