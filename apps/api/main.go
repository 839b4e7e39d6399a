package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"

	"github.com/jmoiron/sqlx"

	echoapi "github.com/campusconnect/backend/apps/api/echo"
	"github.com/campusconnect/backend/core"
	"github.com/campusconnect/backend/core/college"
	"github.com/campusconnect/backend/core/mentor"
	"github.com/campusconnect/backend/core/mission"
	"github.com/campusconnect/backend/core/progress"
	"github.com/campusconnect/backend/core/scholarship"
	"github.com/campusconnect/backend/core/user"
	emailsvc "github.com/campusconnect/backend/services/email"
	logsvc "github.com/campusconnect/backend/services/logger"
	"github.com/campusconnect/backend/storage/database"
	sqlxrepos "github.com/campusconnect/backend/storage/database/sqlx"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	// set up loggers
	var logger core.Logger
	std := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	if core.Conf.Debug {
		logger = logsvc.NewStdLogger(std)
	} else {
		rollbarLogger := logsvc.NewRollbarLogger(std)
		rollbarLogger.Enable(true)
		logger = rollbarLogger
	}

	// set up DB
	db, err := setUpDB()
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	defer func() {
		if err = db.Close(); err != nil {
			logger.Error(fmt.Sprintf("closing database: %v", err), err)
		}
	}()

	// set up services
	var mailSvc core.EmailService
	if core.Conf.Debug {
		mailSvc = emailsvc.NewConsoleService()
	} else {
		mailSvc = emailsvc.NewSendgridService(logger)
	}

	engine := progress.NewEngine(sqlxrepos.NewProgressRepository(db), logger)
	usrSvc := user.NewService(sqlxrepos.NewUserRepository(db), mailSvc, logger)
	missionSvc := mission.NewService(sqlxrepos.NewMissionRepository(db), engine)
	collegeSvc := college.NewService(sqlxrepos.NewCollegeRepository(db), engine)
	mentorSvc := mentor.NewService(sqlxrepos.NewMentorRepository(db), engine, mailSvc)
	scholarshipSvc := scholarship.NewService(sqlxrepos.NewScholarshipRepository(db))

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", core.Conf.Build))
	defer logger.Info("Application stopped")

	validate, translator := core.NewValidator()
	user.RegisterValidators(validate, translator)

	// =========================================================================
	// Start Debug Service
	//
	// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
	// /debug/vars - Added to the default mux by importing the expvar package.

	expvar.NewString("build").Set(core.Conf.Build)
	expvar.NewString("env").Set(core.Conf.Env)

	go func() {
		if err := http.ListenAndServe(core.Conf.Server.DebugHost, http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(echoapi.ServerDeps{
		Logger:         logger,
		UserSvc:        usrSvc,
		MissionSvc:     missionSvc,
		CollegeSvc:     collegeSvc,
		MentorSvc:      mentorSvc,
		ScholarshipSvc: scholarshipSvc,
		Validate:       validate,
		Translator:     translator,
	})

	go server.Start()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), core.Conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Stop(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)
		}
	}
}

func setUpDB() (*sqlx.DB, error) {
	if err := database.CreateIfNotExist(core.Conf); err != nil {
		return nil, err
	}

	db, err := database.Open(core.Conf)
	if err != nil {
		return nil, err
	}

	if err = database.Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}
