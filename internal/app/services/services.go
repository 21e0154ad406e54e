package services

import (
	"ums/internal/app/deps"
	drl "ums/internal/core/domain/rate_limiter"
	"ums/internal/core/services"
	"ums/internal/core/services/auth"
	"ums/internal/core/services/captcha"
	changepassword "ums/internal/core/services/change_password"
	getuserbysessiontoken "ums/internal/core/services/get_user_by_session_token"
	loadpasswordreset "ums/internal/core/services/load_password_reset"
	loginwithemail "ums/internal/core/services/log_in_with_email"
	logout "ums/internal/core/services/log_out"
	ratelimiting "ums/internal/core/services/rate_limiting"
	registeraccount "ums/internal/core/services/register_account"
	resendverification "ums/internal/core/services/resend_verification"
	resetpassword "ums/internal/core/services/reset_password"
	sendpasswordresettoken "ums/internal/core/services/send_password_reset_token"
	updateprofile "ums/internal/core/services/update_profile"
	verifyaccount "ums/internal/core/services/verify_account"
)

type Services struct {
	RegisterAccount        services.Service[registeraccount.Input, registeraccount.Result]
	VerifyAccount          services.Service[verifyaccount.Input, verifyaccount.Result]
	ResendVerification     services.Service[resendverification.Input, resendverification.Result]
	LogInWithEmail         services.Service[loginwithemail.Input, loginwithemail.Result]
	LogOut                 services.Service[logout.Input, logout.Result]
	GetUserBySessionToken  services.Service[getuserbysessiontoken.Input, getuserbysessiontoken.Result]
	SendPasswordResetToken services.Service[sendpasswordresettoken.Input, sendpasswordresettoken.Result]
	LoadPasswordReset      services.Service[loadpasswordreset.Input, loadpasswordreset.Result]
	ResetPassword          services.Service[resetpassword.Input, resetpassword.Result]
	UpdateProfile          services.Service[updateprofile.Input, updateprofile.Result]
	ChangePassword         services.Service[changepassword.Input, changepassword.Result]
}

func InitServices(deps *deps.Deps) *Services {
	s := &Services{}

	s.RegisterAccount = captcha.WithCaptcha(
		deps.CaptchaValidator,
		registeraccount.New(
			deps.Logger,
			deps.UnitOfWork,
			deps.PasswordHasher,
			deps.ImageStorage,
			deps.VerificationLinkSender,
			deps.EventPublisher,
			deps.Now,
		),
	)
	s.VerifyAccount = verifyaccount.New(
		deps.Logger,
		deps.UserRepository,
		deps.EventPublisher,
		deps.Now,
	)
	s.ResendVerification = ratelimiting.WithRateLimiting(
		deps.Logger,
		deps.RateLimiter,
		drl.Limit{Interval: drl.Hour, Value: 3},
		resendverification.New(
			deps.Logger,
			deps.UserRepository,
			deps.VerificationLinkSender,
		),
	)
	s.LogInWithEmail = ratelimiting.WithRateLimiting(
		deps.Logger,
		deps.RateLimiter,
		drl.Limit{Interval: drl.Hour, Value: 10},
		loginwithemail.New(
			deps.Logger,
			deps.UserRepository,
			deps.SessionRepository,
			deps.PasswordHasher,
			deps.SessionTokenGenerator,
			deps.EventPublisher,
			deps.Now,
		),
	)
	s.LogOut = logout.New(
		deps.Logger,
		deps.SessionRepository,
		deps.EventPublisher,
		deps.Now,
	)
	s.GetUserBySessionToken = getuserbysessiontoken.New(
		deps.Logger,
		deps.SessionRepository,
	)
	s.SendPasswordResetToken = captcha.WithCaptcha(
		deps.CaptchaValidator,
		ratelimiting.WithRateLimiting(
			deps.Logger,
			deps.RateLimiter,
			drl.Limit{Interval: drl.Hour, Value: 3},
			sendpasswordresettoken.New(
				deps.Logger,
				deps.UserRepository,
				deps.PasswordResetTokenGenerator,
				deps.PasswordResetLinkSender,
				deps.EventPublisher,
				deps.Now,
			),
		),
	)
	s.LoadPasswordReset = loadpasswordreset.New(
		deps.Logger,
		deps.UserRepository,
		deps.Config.PasswordResetValidDuration(),
		deps.Now,
	)
	s.ResetPassword = resetpassword.New(
		deps.Logger,
		deps.UserRepository,
		deps.PasswordHasher,
		deps.EventPublisher,
		deps.Config.PasswordResetValidDuration(),
		deps.Now,
	)
	s.UpdateProfile = auth.WithAuthentication(
		deps.SessionRepository,
		updateprofile.New(
			deps.Logger,
			deps.UserRepository,
			deps.ImageStorage,
			deps.EventPublisher,
			deps.Now,
		),
	)
	s.ChangePassword = auth.WithAuthentication(
		deps.SessionRepository,
		changepassword.New(
			deps.Logger,
			deps.UserRepository,
			deps.PasswordHasher,
			deps.EventPublisher,
			deps.Now,
		),
	)

	return s
}
