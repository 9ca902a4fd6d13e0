package config

import (
	"errors"
	"time"
)

// ServerConfiguration contains the http server settings
type ServerConfiguration struct {
	Port    int
	Address string
}

// SMTPConfiguration contains the email settings
type SMTPConfiguration struct {
	Enabled  bool
	Host     string
	Port     int
	Username string
	Password string `json:"-"`
	// DisplayName will be displayed as email sender
	DisplayName string `mapstructure:"display-name"`
	// Address is the sender address
	Address string
}

// DatabaseConfiguration contains the settings required to connect to a database
type DatabaseConfiguration struct {
	Type string
	DSN  string `json:"-"`
}

// BehaviourConfiguration configures how the service behaves
type BehaviourConfiguration struct {
	// Name is the display name of the installation
	Name string
	// Site is the public origin of the web client, used to build invite links
	Site string
	// InviteExpiry is the default validity window for new invites,
	// zero means invites never expire
	InviteExpiry      time.Duration `mapstructure:"invite-expiry"`
	PasswordMinLength int           `mapstructure:"password-min-length"`
	// SeedDemoData populates an empty store with a sample restaurant and tasks
	SeedDemoData bool `mapstructure:"seed-demo-data"`
}

// JWTConfiguration contains the access token settings
type JWTConfiguration struct {
	Issuer             string        `mapstructure:"iss"`
	Expiry             time.Duration `mapstructure:"exp"`
	HMACSigningKey     string        `mapstructure:"hmac-signing-key"      json:"-"`
	HMACSigningKeyFile string        `mapstructure:"hmac-signing-key-file"`
}

// CORSConfiguration very basic cors configuration
type CORSConfiguration struct {
	AllowCredentials bool     `mapstructure:"allow-credentials"`
	AllowedMethods   []string `mapstructure:"allowed-methods"`
	AllowedOrigins   []string `mapstructure:"allowed-origins"`
}

// APIConfiguration contains settings of the json api surface
type APIConfiguration struct {
	CORS *CORSConfiguration
}

// Configuration harbours the entire crewline configuration
type Configuration struct {
	Server    *ServerConfiguration    `mapstructure:"server"`
	SMTP      *SMTPConfiguration      `mapstructure:"smtp"`
	Database  *DatabaseConfiguration  `mapstructure:"database"`
	Behaviour *BehaviourConfiguration `mapstructure:"behaviour"`
	JWT       *JWTConfiguration       `mapstructure:"jwt"`
	API       *APIConfiguration       `mapstructure:"api"`
}

// Validate does some basic validation of the config file and tries to be
// helpful on misconfiguration
func (c *Configuration) Validate() error {
	if c.Server == nil {
		return errors.New("no server configuration found")
	}
	if c.Database == nil {
		return errors.New("no database configuration found")
	}
	if c.Behaviour == nil {
		return errors.New("no behaviour configuration found")
	}
	if c.JWT == nil {
		return errors.New("no JWT configuration found")
	}
	if c.JWT.HMACSigningKey == "" && c.JWT.HMACSigningKeyFile == "" {
		return errors.New(
			"you need to define either jwt.hmac-signing-key or jwt.hmac-signing-key-file",
		)
	}
	if c.SMTP != nil && c.SMTP.Enabled {
		if c.SMTP.Host == "" || c.SMTP.Address == "" {
			return errors.New("smtp is enabled but host or sender address is missing")
		}
	}
	return nil
}
