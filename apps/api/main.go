package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof" // /debug/pprof
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	echoapi "github.com/trezcool/academia/apps/api/echo"
	"github.com/trezcool/academia/core"
	"github.com/trezcool/academia/core/academics"
	"github.com/trezcool/academia/core/auth"
	"github.com/trezcool/academia/core/identity"
	logsvc "github.com/trezcool/academia/services/logger"
	"github.com/trezcool/academia/storage/database"
	inmemdb "github.com/trezcool/academia/storage/database/inmem"
	"github.com/trezcool/academia/storage/database/sqlxrepos"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf, err := core.NewConfig()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	// set up loggers
	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug && conf.RollbarToken != "")

	dbLogger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "DB : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)

	// set up storage & services
	repos, closeDB, err := setUpRepositories(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	defer func() {
		if err = closeDB(); err != nil {
			dbLogger.Error("Failed to close", err)
		}
	}()

	identitySvc := identity.NewService(repos.admins, repos.teachers, repos.students, identity.NewHasher(conf.Auth.HashCost))
	academicSvc := academics.NewService(academics.Deps{
		Courses:     repos.courses,
		Contracts:   repos.contracts,
		Enrollments: repos.enrollments,
		Tests:       repos.tests,
		Grades:      repos.grades,
		Students:    repos.students,
	})
	issuer := auth.NewIssuer(conf.AppName, []byte(conf.SecretKey), conf.Auth.TokenTTL)

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q, storage %q", conf.Build, conf.Database.Engine))
	defer logger.Info("Application stopped")

	// =========================================================================
	// Start Debug Service
	//
	// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
	// /debug/vars - Added to the default mux by importing the expvar package.
	// /metrics - Prometheus metrics of the API.

	// Expose important info under /debug/vars.
	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	http.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	go func() {
		if err := http.ListenAndServe(conf.Server.DebugHost, http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(echoapi.ServerDeps{
		Conf:       conf,
		Logger:     logger,
		Issuer:     issuer,
		Identities: identitySvc,
		Academics:  academicSvc,
		Metrics:    echoapi.NewMetrics(registry),
	})

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Error(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Error(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

type repositories struct {
	admins      identity.AdminRepository
	teachers    identity.TeacherRepository
	students    identity.StudentRepository
	courses     academics.CourseRepository
	contracts   academics.ContractRepository
	enrollments academics.EnrollmentRepository
	tests       academics.TestRepository
	grades      academics.GradeRepository
}

// setUpRepositories opens the configured storage engine and returns its repositories and a close func.
func setUpRepositories(conf *core.Config) (repositories, func() error, error) {
	if conf.Database.Engine == "memory" {
		db := inmemdb.Open()
		return repositories{
			admins:      inmemdb.NewAdminRepository(db),
			teachers:    inmemdb.NewTeacherRepository(db),
			students:    inmemdb.NewStudentRepository(db),
			courses:     inmemdb.NewCourseRepository(db),
			contracts:   inmemdb.NewContractRepository(db),
			enrollments: inmemdb.NewEnrollmentRepository(db),
			tests:       inmemdb.NewTestRepository(db),
			grades:      inmemdb.NewGradeRepository(db),
		}, func() error { return nil }, nil
	}

	db, err := setUpDB(conf)
	if err != nil {
		return repositories{}, nil, err
	}
	return repositories{
		admins:      sqlxrepos.NewAdminRepository(db),
		teachers:    sqlxrepos.NewTeacherRepository(db),
		students:    sqlxrepos.NewStudentRepository(db),
		courses:     sqlxrepos.NewCourseRepository(db),
		contracts:   sqlxrepos.NewContractRepository(db),
		enrollments: sqlxrepos.NewEnrollmentRepository(db),
		tests:       sqlxrepos.NewTestRepository(db),
		grades:      sqlxrepos.NewGradeRepository(db),
	}, db.Close, nil
}

func setUpDB(conf *core.Config) (*sqlx.DB, error) {
	ctx := context.Background()
	if conf.Database.AdminUser != "" {
		if err := database.CreateIfNotExist(ctx, conf); err != nil {
			return nil, err
		}
	}

	db, err := database.Open(ctx, conf)
	if err != nil {
		return nil, err
	}

	if err = database.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
