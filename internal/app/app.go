package app

import (
	"fmt"
	"net/http"
	"ums/internal/app/deps"
	"ums/internal/app/services"
	"ums/internal/http/handlers/auth"
	loadpasswordreset "ums/internal/http/handlers/auth/load_password_reset"
	loginwithemail "ums/internal/http/handlers/auth/log_in_with_email"
	logout "ums/internal/http/handlers/auth/log_out"
	registeraccount "ums/internal/http/handlers/auth/register_account"
	resendverification "ums/internal/http/handlers/auth/resend_verification"
	resetpassword "ums/internal/http/handlers/auth/reset_password"
	sendpasswordresettoken "ums/internal/http/handlers/auth/send_password_reset_token"
	verifyaccount "ums/internal/http/handlers/auth/verify_account"
	"ums/internal/http/handlers/captcha"
	changepassword "ums/internal/http/handlers/profile/change_password"
	"ums/internal/http/handlers/profile/events"
	"ums/internal/http/handlers/profile/me"
	updateprofile "ums/internal/http/handlers/profile/update_profile"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func InitHttpServer(deps *deps.Deps, s *services.Services) *http.Server {
	return &http.Server{
		Handler: NewRouter(deps, s),
		Addr:    fmt.Sprintf("0.0.0.0:%d", deps.Config.Port),
	}
}

func NewRouter(deps *deps.Deps, s *services.Services) http.Handler {
	isTestMode := deps.Config.IsTestMode
	secureCookie := deps.Config.SessionCookieSecure

	authRouter := chi.NewRouter()
	authRouter.Method(http.MethodPost, "/signup", registeraccount.New(s.RegisterAccount, isTestMode))
	authRouter.Method(http.MethodGet, "/verify", verifyaccount.New(s.VerifyAccount))
	authRouter.Method(http.MethodPost, "/verification", resendverification.New(s.ResendVerification))
	authRouter.Method(http.MethodPost, "/login", loginwithemail.New(s.LogInWithEmail, secureCookie))
	authRouter.Method(http.MethodPost, "/logout", logout.New(s.LogOut, secureCookie))
	authRouter.Method(
		http.MethodPost,
		"/password_reset/token",
		sendpasswordresettoken.New(s.SendPasswordResetToken, isTestMode),
	)
	authRouter.Method(http.MethodGet, "/password_reset", loadpasswordreset.New(s.LoadPasswordReset))
	authRouter.Method(http.MethodPut, "/password_reset", resetpassword.New(s.ResetPassword))

	eventsHandler := events.New(deps.Logger, deps.SseServer, s.GetUserBySessionToken)

	profileRouter := chi.NewRouter()
	profileRouter.Use(auth.SetAuthTokenToContext)
	profileRouter.Method(http.MethodGet, "/me", me.New(s.GetUserBySessionToken))
	profileRouter.Method(http.MethodPatch, "/me", updateprofile.New(s.UpdateProfile))
	profileRouter.Method(http.MethodPut, "/password", changepassword.New(s.ChangePassword))
	profileRouter.Method(http.MethodGet, "/events", eventsHandler)
	profileRouter.Method(http.MethodGet, "/events/{sessionToken}", eventsHandler)

	router := chi.NewRouter()
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))
	router.Use(captcha.SetCaptchaTokenToContext)
	router.Mount("/auth", authRouter)
	router.Mount("/profile", profileRouter)
	if deps.DiskImageDir != "" {
		router.Handle("/images/*", http.StripPrefix("/images/", http.FileServer(http.Dir(deps.DiskImageDir))))
	}

	return router
}
