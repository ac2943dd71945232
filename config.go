package main

import "time"

type Config struct {
	Port string `env:"PORT" env-default:"3000"`
	// FQDN is the fully qualified domain name of the host serving the app,
	// used to compose absolute URLs in emails and OAuth redirects.
	FQDN          string        `env:"FQDN" env-default:"localhost"`
	SessionSecret string        `env:"SESSION_SECRET" env-required:"true"`
	SessionTimeout time.Duration `env:"SESSION_TIMEOUT" env-default:"24h"`
	// InvitationTimeout is how long a family invitation token stays acceptable.
	InvitationTimeout time.Duration `env:"INVITATION_TIMEOUT" env-default:"72h"`

	AzureClientID       string `env:"AZURE_CLIENT_ID" env-required:"true"`
	AzureClientSecret   string `env:"AZURE_CLIENT_SECRET" env-required:"true"`
	AzureTenantID       string `env:"AZURE_TENANT_ID" env-required:"true"`
	AzureRedirectURI    string `env:"AZURE_REDIRECT_URI" env-required:"true"`
	AzurePolicy         string `env:"AZURE_POLICY" env-required:"true"`
	AzureAuthority      string `env:"AZURE_AUTHORITY" env-required:"true"`
	AzureB2CDomain      string `env:"AZURE_B2C_DOMAIN" env-default:"oviedojeepclub.onmicrosoft.com"`
	AzureExtensionsAppID string `env:"AZURE_EXTENSIONS_APP_ID" env-required:"true"`

	AzureStorageConnectionString string `env:"AZURE_STORAGE_CONNECTION_STRING" env-required:"true"`

	AzureCommEndpoint  string `env:"AZURE_COMM_ENDPOINT"`
	AzureCommAccessKey string `env:"AZURE_COMM_ACCESS_KEY"`
	AzureCommSender    string `env:"AZURE_COMM_SENDER"`

	SmtpServer   string `env:"SMTP_SERVER"`
	SmtpPort     int    `env:"SMTP_PORT" env-default:"587"`
	SmtpUser     string `env:"SMTP_USER"`
	SmtpPassword string `env:"SMTP_PASSWORD"`

	SquareAccessToken   string `env:"SQUARE_ACCESS_TOKEN" env-required:"true"`
	SquareApplicationID string `env:"SQUARE_APPLICATION_ID" env-required:"true"`
	SquareEnvironment   string `env:"SQUARE_ENVIRONMENT" env-default:"sandbox"`

	FacebookAppID       string `env:"FACEBOOK_APP_ID"`
	FacebookAppSecret   string `env:"FACEBOOK_APP_SECRET"`
	FacebookPageID      string `env:"FACEBOOK_PAGE_ID"`
	FacebookRedirectURI string `env:"FACEBOOK_REDIRECT_URI"`
}
