package echoapi

import (
	"context"
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/shuledash/shuledash/core"
	"github.com/shuledash/shuledash/core/attendance"
	"github.com/shuledash/shuledash/core/finance"
	"github.com/shuledash/shuledash/core/marks"
	"github.com/shuledash/shuledash/core/orders"
	"github.com/shuledash/shuledash/core/student"
	"github.com/shuledash/shuledash/core/subject"
	"github.com/shuledash/shuledash/core/transport"
)

type (
	Options struct {
		Conf           *core.Config
		Logger         core.Logger
		Validate       *validator.Validate
		Translator     ut.Translator
		Creds          TokenSaver
		DisableReqLogs bool

		AttendanceSvc *attendance.Service
		StudentSvc    *student.Service
		SubjectSvc    *subject.Service
		TransportSvc  *transport.Service
		MarksSvc      *marks.Service
		FinanceSvc    *finance.Service
		OrderSvc      *orders.Service
	}

	Server interface {
		http.Handler
		Start()
		Stop(context.Context) error
	}

	server struct {
		opts     *Options
		app      *echo.Echo
		shutdown chan struct{}
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) Server {
	s := &server{
		opts:     opts,
		app:      echo.New(),
		shutdown: make(chan struct{}, 1),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	conf := s.opts.Conf

	s.app.Pre(middleware.RemoveTrailingSlash())
	s.app.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{conf.FrontendBaseURL},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization},
	}))
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger, s.opts.Translator, s.signalShutdown)
	s.app.Debug = conf.Debug

	s.app.GET("/", home)

	v1 := s.app.Group("/v1")
	jwtConf := newJWTConfig(conf)
	jwt := middleware.JWTWithConfig(jwtConf)

	registerAuthAPI(v1, jwt, conf, s.opts.Creds)
	registerAttendanceAPI(v1, jwt, s.opts.AttendanceSvc)
	registerStudentAPI(v1, jwt, s.opts.StudentSvc)
	registerSubjectAPI(v1, jwt, s.opts.SubjectSvc)
	registerTransportAPI(v1, jwt, s.opts.TransportSvc)
	registerMarksAPI(v1, jwt, s.opts.MarksSvc)
	registerFinanceAPI(v1, jwt, s.opts.FinanceSvc)
	registerOrderAPI(v1, jwt, s.opts.OrderSvc)
}

func (s *server) signalShutdown() {
	select {
	case s.shutdown <- struct{}{}:
	default:
	}
}

func (s *server) Start() {
	s.app.Logger.Fatal(s.app.Start(s.opts.Conf.Addr()))
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to ShuleDash API!")
}
