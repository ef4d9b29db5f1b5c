package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trainia/trainia-cli/internal/client/client"
	"github.com/trainia/trainia-cli/internal/client/models"
	"github.com/trainia/trainia-cli/internal/client/services"
)

// ---- fake session manager ----

type fakeSession struct {
	cur services.Session

	checkCalls int

	loginEmail, loginPassword string
	loginErr                  error
	loginCalls                int

	registerName, registerEmail string
	registerMsg                 string
	registerErr                 error
	registerCalls               int

	forgotEmail string
	forgotMsg   string
	forgotErr   error
	forgotCalls int

	profile     *models.User
	profileErr  error
	profileCalls int

	updateArg   client.ProfileUpdate
	updateUser  *models.User
	updateErr   error
	updateCalls int

	changeCurrent, changeNew string
	changeMsg                string
	changeErr                error
	changeCalls              int

	warning    *models.DeletionWarningData
	warningErr error

	deletePassword string
	deleteConfirm  bool
	deleteMsg      string
	deleteErr      error
	deleteCalls    int

	logoutErr   error
	logoutCalls int
}

func (f *fakeSession) Check(ctx context.Context) { f.checkCalls++ }

func (f *fakeSession) Login(ctx context.Context, email, password string) error {
	f.loginCalls++
	f.loginEmail, f.loginPassword = email, password
	return f.loginErr
}

func (f *fakeSession) Register(ctx context.Context, name, email, password, confirmation string) (string, error) {
	f.registerCalls++
	f.registerName, f.registerEmail = name, email
	return f.registerMsg, f.registerErr
}

func (f *fakeSession) ForgotPassword(ctx context.Context, email string) (string, error) {
	f.forgotCalls++
	f.forgotEmail = email
	return f.forgotMsg, f.forgotErr
}

func (f *fakeSession) GetProfile(ctx context.Context) (*models.User, error) {
	f.profileCalls++
	return f.profile, f.profileErr
}

func (f *fakeSession) UpdateProfile(ctx context.Context, upd client.ProfileUpdate) (*models.User, error) {
	f.updateCalls++
	f.updateArg = upd
	return f.updateUser, f.updateErr
}

func (f *fakeSession) ChangePassword(ctx context.Context, currentPassword, newPassword string) (string, error) {
	f.changeCalls++
	f.changeCurrent, f.changeNew = currentPassword, newPassword
	return f.changeMsg, f.changeErr
}

func (f *fakeSession) GetDeletionWarning(ctx context.Context) (*models.DeletionWarningData, error) {
	return f.warning, f.warningErr
}

func (f *fakeSession) DeleteAccount(ctx context.Context, password string, confirmDeletion bool) (string, error) {
	f.deleteCalls++
	f.deletePassword, f.deleteConfirm = password, confirmDeletion
	return f.deleteMsg, f.deleteErr
}

func (f *fakeSession) Logout(ctx context.Context) error {
	f.logoutCalls++
	return f.logoutErr
}

func (f *fakeSession) Current() services.Session       { return f.cur }
func (f *fakeSession) Subscribe() <-chan services.Session { return make(chan services.Session) }

// ---- seams ----

// stubInputs feeds canned answers to the text and password prompts, in order.
func stubInputs(t *testing.T, texts []string, passwords [][]byte) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	ti, pi := 0, 0
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		require.Less(t, ti, len(texts), "unexpected extra text prompt")
		v := texts[ti]
		ti++
		return v, nil
	}
	getPassword = func(_ string, _ io.Writer) ([]byte, error) {
		require.Less(t, pi, len(passwords), "unexpected extra password prompt")
		v := passwords[pi]
		pi++
		return append([]byte(nil), v...), nil
	}
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
}

// captureOutput collects everything the commands print.
func captureOutput(t *testing.T) *[]string {
	t.Helper()
	orig := printlnFn
	var lines []string
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSpace(fmt.Sprintln(a...)))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func newTestApp(sess services.SessionManager) *App {
	return &App{session: sess, reader: bufio.NewReader(strings.NewReader(""))}
}

// ---- login ----

func TestLogin_PassesCredentialsToSession(t *testing.T) {
	stubInputs(t, []string{"a@b.com"}, [][]byte{[]byte("secret")})
	captureOutput(t)

	sess := &fakeSession{}
	app := newTestApp(sess)

	require.NoError(t, app.Login(context.Background()))
	assert.Equal(t, 1, sess.loginCalls)
	assert.Equal(t, "a@b.com", sess.loginEmail)
	assert.Equal(t, "secret", sess.loginPassword)
}

func TestLogin_PrintsFieldErrors(t *testing.T) {
	stubInputs(t, []string{"a@b.com"}, [][]byte{[]byte("wrong")})
	out := captureOutput(t)

	sess := &fakeSession{loginErr: &client.ValidationError{
		Message: "invalid credentials",
		Fields:  client.FieldErrors{"email": {"no account for this address"}},
	}}
	app := newTestApp(sess)

	err := app.Login(context.Background())
	require.Error(t, err)

	joined := strings.Join(*out, "\n")
	assert.Contains(t, joined, "invalid credentials")
	assert.Contains(t, joined, "email: no account for this address")
}

// ---- register ----

func TestRegister_Success(t *testing.T) {
	stubInputs(t, []string{"Ada", "a@b.com"}, [][]byte{[]byte("secret1"), []byte("secret1")})
	out := captureOutput(t)

	sess := &fakeSession{registerMsg: "check your inbox"}
	app := newTestApp(sess)

	require.NoError(t, app.Register(context.Background()))
	assert.Equal(t, 1, sess.registerCalls)
	assert.Equal(t, "Ada", sess.registerName)
	assert.Contains(t, strings.Join(*out, "\n"), "check your inbox")
}

func TestRegister_InvalidEmail_NoRequest(t *testing.T) {
	stubInputs(t, []string{"Ada", "not-an-email"}, nil)
	captureOutput(t)

	sess := &fakeSession{}
	app := newTestApp(sess)

	require.NoError(t, app.Register(context.Background()))
	assert.Zero(t, sess.registerCalls)
}

func TestRegister_PasswordMismatch_NoRequest(t *testing.T) {
	stubInputs(t, []string{"Ada", "a@b.com"}, [][]byte{[]byte("secret1"), []byte("different")})
	captureOutput(t)

	sess := &fakeSession{}
	app := newTestApp(sess)

	require.NoError(t, app.Register(context.Background()))
	assert.Zero(t, sess.registerCalls)
}

func TestRegister_ShortPassword_NoRequest(t *testing.T) {
	stubInputs(t, []string{"Ada", "a@b.com"}, [][]byte{[]byte("abc")})
	captureOutput(t)

	sess := &fakeSession{}
	app := newTestApp(sess)

	require.NoError(t, app.Register(context.Background()))
	assert.Zero(t, sess.registerCalls)
}

// ---- forgot password ----

func TestForgot_SendsEmail(t *testing.T) {
	stubInputs(t, []string{"a@b.com"}, nil)
	out := captureOutput(t)

	sess := &fakeSession{forgotMsg: "reset link sent"}
	app := newTestApp(sess)

	require.NoError(t, app.Forgot(context.Background()))
	assert.Equal(t, "a@b.com", sess.forgotEmail)
	assert.Contains(t, strings.Join(*out, "\n"), "reset link sent")
}

func TestForgot_InvalidEmail_NoRequest(t *testing.T) {
	stubInputs(t, []string{"nope"}, nil)
	captureOutput(t)

	sess := &fakeSession{}
	app := newTestApp(sess)

	require.NoError(t, app.Forgot(context.Background()))
	assert.Zero(t, sess.forgotCalls)
}

// ---- profile ----

func TestWhoami_PrintsProfile(t *testing.T) {
	out := captureOutput(t)

	sess := &fakeSession{profile: &models.User{ID: 7, Name: "Ada", Email: "a@b.com", Role: "user", SubscriptionStatus: "active"}}
	app := newTestApp(sess)

	require.NoError(t, app.Whoami(context.Background()))
	joined := strings.Join(*out, "\n")
	assert.Contains(t, joined, "Ada")
	assert.Contains(t, joined, "a@b.com")
}

func TestUpdate_NothingToUpdate_NoRequest(t *testing.T) {
	stubInputs(t, []string{"", "", ""}, nil)
	captureOutput(t)

	sess := &fakeSession{}
	app := newTestApp(sess)

	require.NoError(t, app.Update(context.Background()))
	assert.Zero(t, sess.updateCalls)
}

func TestUpdate_SendsOnlyPresentFields(t *testing.T) {
	stubInputs(t, []string{"Grace", "", ""}, nil)
	captureOutput(t)

	sess := &fakeSession{updateUser: &models.User{Name: "Grace", Email: "a@b.com"}}
	app := newTestApp(sess)

	require.NoError(t, app.Update(context.Background()))
	require.Equal(t, 1, sess.updateCalls)
	require.NotNil(t, sess.updateArg.Name)
	assert.Equal(t, "Grace", *sess.updateArg.Name)
	assert.Nil(t, sess.updateArg.Email)
	assert.Nil(t, sess.updateArg.Avatar)
}

func TestUpdate_ReadsAvatarFile(t *testing.T) {
	stubInputs(t, []string{"", "", "/tmp/avatar.jpg"}, nil)
	captureOutput(t)

	origRF := readFile
	readFile = func(name string) ([]byte, error) {
		assert.Equal(t, "/tmp/avatar.jpg", name)
		return []byte{0xff, 0xd8}, nil
	}
	t.Cleanup(func() { readFile = origRF })

	sess := &fakeSession{updateUser: &models.User{}}
	app := newTestApp(sess)

	require.NoError(t, app.Update(context.Background()))
	require.Equal(t, 1, sess.updateCalls)
	assert.Equal(t, []byte{0xff, 0xd8}, sess.updateArg.Avatar)
}

// ---- password change ----

func TestPasswd_Success(t *testing.T) {
	stubInputs(t, nil, [][]byte{[]byte("old"), []byte("newpass1"), []byte("newpass1")})
	out := captureOutput(t)

	sess := &fakeSession{changeMsg: "password changed"}
	app := newTestApp(sess)

	require.NoError(t, app.Passwd(context.Background()))
	assert.Equal(t, "old", sess.changeCurrent)
	assert.Equal(t, "newpass1", sess.changeNew)
	assert.Contains(t, strings.Join(*out, "\n"), "password changed")
}

func TestPasswd_ConfirmationMismatch_NoRequest(t *testing.T) {
	stubInputs(t, nil, [][]byte{[]byte("old"), []byte("newpass1"), []byte("other")})
	captureOutput(t)

	sess := &fakeSession{}
	app := newTestApp(sess)

	require.NoError(t, app.Passwd(context.Background()))
	assert.Zero(t, sess.changeCalls)
}

// ---- account deletion ----

func TestDelete_AbortsWithoutExplicitYes(t *testing.T) {
	stubInputs(t, []string{"no"}, nil)
	captureOutput(t)

	sess := &fakeSession{warning: &models.DeletionWarningData{UserID: 7, Email: "a@b.com"}}
	app := newTestApp(sess)

	require.NoError(t, app.Delete(context.Background()))
	assert.Zero(t, sess.deleteCalls)
}

func TestDelete_ConfirmedDeletion(t *testing.T) {
	stubInputs(t, []string{"yes"}, [][]byte{[]byte("secret")})
	out := captureOutput(t)

	sess := &fakeSession{
		warning:   &models.DeletionWarningData{UserID: 7, Email: "a@b.com", Warning: "all workouts will be removed"},
		deleteMsg: "account deleted",
	}
	app := newTestApp(sess)

	require.NoError(t, app.Delete(context.Background()))
	require.Equal(t, 1, sess.deleteCalls)
	assert.Equal(t, "secret", sess.deletePassword)
	assert.True(t, sess.deleteConfirm)
	assert.Contains(t, strings.Join(*out, "\n"), "account deleted")
}

func TestDelete_WarningFailure_NoDeletion(t *testing.T) {
	captureOutput(t)

	sess := &fakeSession{warningErr: errors.New("boom")}
	app := newTestApp(sess)

	require.Error(t, app.Delete(context.Background()))
	assert.Zero(t, sess.deleteCalls)
}

// ---- logout ----

func TestLogout_Delegates(t *testing.T) {
	captureOutput(t)

	sess := &fakeSession{}
	app := newTestApp(sess)

	require.NoError(t, app.Logout(context.Background()))
	require.NoError(t, app.Logout(context.Background()))
	assert.Equal(t, 2, sess.logoutCalls)
}
