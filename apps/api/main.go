package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	echoapi "github.com/shuledash/shuledash/apps/api/echo"
	"github.com/shuledash/shuledash/core"
	"github.com/shuledash/shuledash/core/attendance"
	"github.com/shuledash/shuledash/core/finance"
	"github.com/shuledash/shuledash/core/marks"
	"github.com/shuledash/shuledash/core/orders"
	"github.com/shuledash/shuledash/core/student"
	"github.com/shuledash/shuledash/core/subject"
	"github.com/shuledash/shuledash/core/transport"
	"github.com/shuledash/shuledash/services/creds"
	emailsvc "github.com/shuledash/shuledash/services/email"
	logsvc "github.com/shuledash/shuledash/services/logger"
	"github.com/shuledash/shuledash/services/schoolapi"
	"github.com/shuledash/shuledash/services/storage"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	store := creds.NewFileStore(conf)
	api := schoolapi.NewClient(conf, store, logger)

	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}

	var signer core.FileSigner
	if conf.OSS.Endpoint != "" {
		var err error
		if signer, err = storage.NewService(conf); err != nil {
			logger.Fatal(fmt.Sprintf("setting up object storage: %v", err), err)
		}
	}

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	server := echoapi.NewServer(&echoapi.Options{
		Conf:       conf,
		Logger:     logger,
		Validate:   validate,
		Translator: translator,
		Creds:      store,

		AttendanceSvc: attendance.NewService(api, validate, logger),
		StudentSvc:    student.NewService(conf, api, signer, logger),
		SubjectSvc:    subject.NewService(api, logger),
		TransportSvc:  transport.NewService(api, validate, logger),
		MarksSvc:      marks.NewService(conf, api, validate, logger),
		FinanceSvc:    finance.NewService(api, mailSvc, logger),
		OrderSvc:      orders.NewService(conf, api, logger),
	})

	go server.Start()

	// =========================================================================
	// Shutdown

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	sig := <-quit
	logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

	ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Stop(ctx); err != nil {
		logger.Fatal(fmt.Sprintf("could not stop server gracefully: %v", err), err)
	}
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}
