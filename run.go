package main

import (
	"context"
	"fmt"
	"net/url"

	"github.com/oviedojeepclub/clubhub/internal/directory"
	"github.com/oviedojeepclub/clubhub/internal/emailer"
	"github.com/oviedojeepclub/clubhub/internal/facebook"
	"github.com/oviedojeepclub/clubhub/internal/payments"
	"github.com/oviedojeepclub/clubhub/internal/scheduler"
	"github.com/oviedojeepclub/clubhub/internal/storage"
	"github.com/oviedojeepclub/clubhub/internal/webserver"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

func run(cfg Config) {
	ctx := context.Background()

	blobStore, err := storage.NewBlobStore(cfg.AzureStorageConnectionString)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot connect to blob storage")
	}
	if err := blobStore.EnsureContainers(ctx); err != nil {
		log.Fatal().Err(err).Msg("cannot prepare blob containers")
	}

	invitations, err := storage.NewInvitationTable(cfg.AzureStorageConnectionString)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot connect to table storage")
	}
	if err := invitations.EnsureTable(ctx); err != nil {
		log.Fatal().Err(err).Msg("cannot prepare invitations table")
	}

	lock, err := storage.NewLeaseLock(blobStore)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot prepare scheduler lock")
	}

	members := directory.NewClient(
		cfg.AzureTenantID,
		cfg.AzureClientID,
		cfg.AzureClientSecret,
		cfg.AzureB2CDomain,
		cfg.AzureExtensionsAppID,
	)

	square := payments.NewClient(cfg.SquareAccessToken, cfg.SquareEnvironment)
	fb := facebook.NewClient(cfg.FacebookPageID)

	sender := sender(cfg)

	loginURL := fmt.Sprintf("https://%s/login", cfg.FQDN)
	expiration := scheduler.NewExpirationCheck(members, sender, lock, loginURL)
	reminders := scheduler.NewEventReminders(blobStore, members, sender)
	cronJobs, err := scheduler.Start(expiration, reminders)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot start scheduled jobs")
	}
	defer cronJobs.Stop()

	app := webserver.New(webserverConfig(cfg), webserver.SetupControllers(webserverConfig(cfg), webserver.Dependencies{
		Directory:    members,
		Events:       blobStore,
		Invitations:  invitations,
		Payments:     square,
		Facebook:     fb,
		Sender:       sender,
		AuthFlow:     b2cFlow(cfg),
		FacebookFlow: facebook.OAuthConfig(cfg.FacebookAppID, cfg.FacebookAppSecret, cfg.FacebookRedirectURI),
	}))

	log.Info().Str("port", cfg.Port).Msg("clubhub started")
	if err := app.Listen(fmt.Sprintf(":%s", cfg.Port)); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func webserverConfig(cfg Config) webserver.Config {
	return webserver.Config{
		FQDN:                cfg.FQDN,
		JwtSecret:           []byte(cfg.SessionSecret),
		SessionTimeout:      cfg.SessionTimeout,
		InvitationTimeout:   cfg.InvitationTimeout,
		LogoutURL:           logoutURL(cfg),
		SquareApplicationID: cfg.SquareApplicationID,
	}
}

// b2cFlow builds the authorization code flow against the B2C sign-in user
// flow. The authority already carries the tenant domain and policy name.
func b2cFlow(cfg Config) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     cfg.AzureClientID,
		ClientSecret: cfg.AzureClientSecret,
		RedirectURL:  cfg.AzureRedirectURI,
		Scopes:       []string{"openid", "offline_access"},
		Endpoint: oauth2.Endpoint{
			AuthURL:  fmt.Sprintf("%s/oauth2/v2.0/authorize", cfg.AzureAuthority),
			TokenURL: fmt.Sprintf("%s/oauth2/v2.0/token", cfg.AzureAuthority),
		},
	}
}

func logoutURL(cfg Config) string {
	return fmt.Sprintf("%s/oauth2/v2.0/logout?post_logout_redirect_uri=%s",
		cfg.AzureAuthority,
		url.QueryEscape(fmt.Sprintf("https://%s/", cfg.FQDN)),
	)
}

// sender picks the best configured email transport: Azure Communication
// Services first, then SMTP, falling back to a no-op.
func sender(cfg Config) webserver.Sender {
	if cfg.AzureCommEndpoint != "" && cfg.AzureCommAccessKey != "" && cfg.AzureCommSender != "" {
		return emailer.NewACS(cfg.AzureCommEndpoint, cfg.AzureCommAccessKey, cfg.AzureCommSender)
	}
	if cfg.SmtpServer != "" && cfg.SmtpUser != "" && cfg.SmtpPassword != "" {
		return &emailer.SMTP{
			Server:   cfg.SmtpServer,
			Port:     cfg.SmtpPort,
			User:     cfg.SmtpUser,
			Password: cfg.SmtpPassword,
		}
	}
	log.Warn().Msg("no email transport configured, emails will be discarded")
	return &emailer.NoEmail{}
}
