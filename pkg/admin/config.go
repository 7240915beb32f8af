package admin

import (
	"flag"
	"io"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// SecurityProtocol names the transport security mode the broker client runs.
type SecurityProtocol string

const (
	SecurityPlaintext     SecurityProtocol = "PLAINTEXT"
	SecuritySSL           SecurityProtocol = "SSL"
	SecuritySASLPlaintext SecurityProtocol = "SASL_PLAINTEXT"
	SecuritySASLSSL       SecurityProtocol = "SASL_SSL"
)

// TLSConfig is the SSL option bundle forwarded to the broker client.
type TLSConfig struct {
	CAFile        string `yaml:"ca_file"`
	CertFile      string `yaml:"cert_file"`
	KeyFile       string `yaml:"key_file"`
	KeyPassword   string `yaml:"key_password"`
	CRLFile       string `yaml:"crl_file"`
	CheckHostname bool   `yaml:"check_hostname"`
}

// SASLConfig is the SASL option bundle forwarded to the broker client.
type SASLConfig struct {
	Mechanism           string `yaml:"mechanism"`
	Username            string `yaml:"username"`
	Password            string `yaml:"password"`
	KerberosServiceName string `yaml:"kerberos_service_name"`
	KerberosDomainName  string `yaml:"kerberos_domain_name"`
	OAuthTokenProvider  string `yaml:"oauth_token_provider"`
}

// Config holds every recognized option. Unknown keys in a YAML document are a
// hard error at load time.
type Config struct {
	BootstrapServers []string `yaml:"bootstrap_servers"`
	ClientID         string   `yaml:"client_id"`

	RequestTimeout           time.Duration `yaml:"request_timeout"`
	APIVersion               string        `yaml:"api_version"`
	APIVersionAutoTimeout    time.Duration `yaml:"api_version_auto_timeout"`
	RetryBackoff             time.Duration `yaml:"retry_backoff"`
	ReconnectBackoff         time.Duration `yaml:"reconnect_backoff"`
	ReconnectBackoffMax      time.Duration `yaml:"reconnect_backoff_max"`
	ConnectionsMaxIdle       time.Duration `yaml:"connections_max_idle"`
	MetadataMaxAge           time.Duration `yaml:"metadata_max_age"`
	MaxInFlightPerConnection int           `yaml:"max_in_flight_requests_per_connection"`

	SecurityProtocol SecurityProtocol `yaml:"security_protocol"`
	TLS              TLSConfig        `yaml:"tls"`
	SASL             SASLConfig       `yaml:"sasl"`
	SOCKS5Proxy      string           `yaml:"socks5_proxy"`

	MetricsNumSamples        int           `yaml:"metrics_num_samples"`
	MetricsSampleWindow      time.Duration `yaml:"metrics_sample_window"`
	ControllerRefreshTimeout time.Duration `yaml:"controller_refresh_timeout"`
}

// RegisterFlagsAndApplyDefaults sets defaults and registers the flags worth
// overriding on a command line.
func (cfg *Config) RegisterFlagsAndApplyDefaults(prefix string, f *flag.FlagSet) {
	cfg.BootstrapServers = []string{"localhost:9092"}
	cfg.RetryBackoff = 100 * time.Millisecond
	cfg.ReconnectBackoff = 50 * time.Millisecond
	cfg.ReconnectBackoffMax = 30 * time.Second
	cfg.ConnectionsMaxIdle = 9 * time.Minute
	cfg.MetadataMaxAge = 5 * time.Minute
	cfg.MaxInFlightPerConnection = 5
	cfg.SecurityProtocol = SecurityPlaintext
	cfg.TLS.CheckHostname = true
	cfg.SASL.KerberosServiceName = "kafka"
	cfg.MetricsNumSamples = 2
	cfg.MetricsSampleWindow = 30 * time.Second
	cfg.ControllerRefreshTimeout = 30 * time.Second

	f.StringVar(&cfg.ClientID, prefix+".client-id", "kafkaadmin-go", "Client id passed with every request.")
	f.DurationVar(&cfg.RequestTimeout, prefix+".request-timeout", 30*time.Second, "Default per-call timeout.")
	f.StringVar(&cfg.APIVersion, prefix+".api-version", "", "Pin the broker api version instead of probing, e.g. 2.6.0.")
	f.DurationVar(&cfg.APIVersionAutoTimeout, prefix+".api-version-auto-timeout", 2*time.Second, "Bound on the api version probe.")
}

// Validate checks cross-field constraints.
func (cfg *Config) Validate() error {
	if len(cfg.BootstrapServers) == 0 {
		return configErrorf("bootstrap_servers must not be empty")
	}
	if cfg.RequestTimeout <= 0 {
		return configErrorf("request_timeout must be positive, got %s", cfg.RequestTimeout)
	}
	switch cfg.SecurityProtocol {
	case SecurityPlaintext, SecuritySSL, SecuritySASLPlaintext, SecuritySASLSSL:
	default:
		return configErrorf("unknown security_protocol %q", cfg.SecurityProtocol)
	}
	if cfg.SecurityProtocol == SecuritySASLPlaintext || cfg.SecurityProtocol == SecuritySASLSSL {
		if cfg.SASL.Mechanism == "" {
			return configErrorf("sasl.mechanism is required with security_protocol %s", cfg.SecurityProtocol)
		}
	}
	if cfg.APIVersion != "" {
		if _, err := ParseBrokerVersion(cfg.APIVersion); err != nil {
			return err
		}
	}
	return nil
}

// LoadConfig reads YAML over the flag defaults. Unknown fields are an error,
// matching the contract that any unrecognized option fails construction.
func LoadConfig(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return &ConfigurationError{Reason: err.Error()}
	}
	return cfg.Validate()
}

// ParseBrokerVersion parses "major.minor.patch" (patch optional).
func ParseBrokerVersion(s string) (BrokerVersion, error) {
	parts := strings.Split(s, ".")
	if len(parts) < 2 || len(parts) > 3 {
		return BrokerVersion{}, configErrorf("cannot parse api_version %q", s)
	}
	var nums [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return BrokerVersion{}, configErrorf("cannot parse api_version %q", s)
		}
		nums[i] = n
	}
	return BrokerVersion{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}
