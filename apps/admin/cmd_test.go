package main

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/campusconnect/backend/core/user"
	"github.com/campusconnect/backend/storage/database/inmem"
	"github.com/campusconnect/backend/tests"
)

func setup(t *testing.T) (*commandLine, user.Repository) {
	t.Helper()

	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("inmemdb.Open() failed: %v", err)
	}
	usrRepo := inmemdb.NewUserRepository(db)
	return &commandLine{
		db:      &sqlx.DB{},
		usrRepo: usrRepo,
	}, usrRepo
}

func mockPassword(pwd string) {
	readPasswordFunc = func(fd int) ([]byte, error) { return []byte(pwd), nil }
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
	extra      interface{}
}

func checkErr(t *testing.T, tt cliTest, err error) {
	if tt.wantErr != nil || tt.wantErrStr != "" {
		if err == nil {
			t.Fatalf("run() error = nil, wantErr %v%v", tt.wantErr, tt.wantErrStr)
		}
		if tt.wantErr != nil && err != tt.wantErr {
			t.Errorf("run() error = %v, wantErr %v", err, tt.wantErr)
		}
		if tt.wantErrStr != "" && err.Error() != tt.wantErrStr {
			t.Errorf("run() error = %q, wantErrStr %q", err, tt.wantErrStr)
		}
		return
	}
	if err != nil {
		t.Errorf("run() failed: %v", err)
	}
}

func Test_commandLine_run(t *testing.T) {
	cli, _ := setup(t)
	mockPassword("LordOfTheRings")

	tests := []cliTest{
		{name: "no command", args: []string{}, wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "migrate: no subcommand", args: []string{"migrate"}, wantErr: errHelp},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkErr(t, tt, cli.run(append([]string{"admin"}, tt.args...)))
		})
	}
}

func Test_commandLine_migrate(t *testing.T) {
	cli, _ := setup(t)

	gooseRunFunc = func(command string, db *sql.DB, fsys fs.FS, dir string, args ...string) error {
		switch command {
		case "up", "up-by-one", "down", "redo", "reset", "status", "version": // pass
		case "up-to", "down-to":
			if len(args) == 0 {
				return fmt.Errorf("%s requires a version argument", command)
			}
		default:
			return fmt.Errorf("%q: no such command", command)
		}
		return nil
	}

	tests := []cliTest{
		{name: "unknown subcommand", args: []string{"migrate", "lol"}, wantErrStr: "\"lol\": no such command"},
		{name: "up-to: no args", args: []string{"migrate", "up-to"}, wantErrStr: "up-to requires a version argument"},
		{name: "up", args: []string{"migrate", "up"}},
		{name: "up-to", args: []string{"migrate", "up-to", "2"}},
		{name: "down", args: []string{"migrate", "down"}},
		{name: "status", args: []string{"migrate", "status"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkErr(t, tt, cli.run(append([]string{"admin"}, tt.args...)))
		})
	}
}

func Test_commandLine_addUser(t *testing.T) {
	cli, usrRepo := setup(t)
	ctx := context.Background()
	mockPassword("LordOfTheRings")

	tests := []cliTest{
		{name: "username required", args: []string{"adduser", "-email", "asha@test.cd"}, wantErr: errHelp},
		{name: "email required", args: []string{"adduser", "-username", "asha"}, wantErr: errHelp},
		{name: "creates a student", args: []string{"adduser", "-username", "asha", "-email", "asha@test.cd"}},
		{name: "creates an admin", args: []string{"adduser", "-username", "boss", "-email", "boss@test.cd", "-admin"}},
		{name: "updates an existing user", args: []string{"adduser", "-username", "asha", "-email", "asha@test.cd", "-admin"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkErr(t, tt, cli.run(append([]string{"admin"}, tt.args...)))
		})
	}

	asha, err := usrRepo.GetUserByUsername(ctx, "asha")
	if err != nil {
		t.Fatalf("GetUserByUsername() failed: %v", err)
	}
	if !asha.IsAdmin() { // promoted by the last run
		t.Errorf("Roles = %v, want admin", asha.Roles)
	}
	if err = asha.CheckPassword("LordOfTheRings"); err != nil {
		t.Errorf("CheckPassword() failed: %v", err)
	}
	if asha.XP != 0 || asha.Level != 1 {
		t.Errorf("progress = xp %d lvl %d, want xp 0 lvl 1", asha.XP, asha.Level)
	}

	boss, err := usrRepo.GetUserByUsername(ctx, "boss")
	if err != nil {
		t.Fatalf("GetUserByUsername() failed: %v", err)
	}
	if !boss.IsAdmin() {
		t.Errorf("Roles = %v, want admin", boss.Roles)
	}
}

func Test_commandLine_resetPassword(t *testing.T) {
	cli, usrRepo := setup(t)
	testutil.CreateUser(t, usrRepo, "Asha", "asha", "asha@test.cd", "OldPassword", nil, true)

	mockPassword("NewPassword")

	tests := []cliTest{
		{name: "username required", args: []string{"resetpassword"}, wantErr: errHelp},
		{name: "unknown user", args: []string{"resetpassword", "-username", "whodis"}, wantErr: user.ErrNotFound},
		{name: "by username", args: []string{"resetpassword", "-username", "asha"}},
		{name: "by email", args: []string{"resetpassword", "-username", "ASHA@test.cd"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkErr(t, tt, cli.run(append([]string{"admin"}, tt.args...)))
		})
	}

	usr, err := usrRepo.GetUserByUsername(context.Background(), "asha")
	if err != nil {
		t.Fatalf("GetUserByUsername() failed: %v", err)
	}
	if err = usr.CheckPassword("NewPassword"); err != nil {
		t.Errorf("CheckPassword() failed: %v", err)
	}
	if usr.CheckPassword("OldPassword") == nil {
		t.Error("old password still accepted")
	}
}

// empty prompt input aborts the command
func Test_commandLine_promptPassword_empty(t *testing.T) {
	cli, _ := setup(t)
	mockPassword("")

	if err := cli.run([]string{"admin", "adduser", "-username", "asha", "-email", "asha@test.cd"}); err != errHelp {
		t.Errorf("run() error = %v, wantErr %v", err, errHelp)
	}
}
