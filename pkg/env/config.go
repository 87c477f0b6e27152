// Package env provides the common configuration of create2 programs.
package env

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/denisbrodbeck/machineid"
	"gopkg.in/yaml.v3"

	"github.com/robotalks/create2/pkg/oi/comm"
	"github.com/robotalks/create2/pkg/oi/serial"
	"github.com/robotalks/create2/pkg/oi/sensors"
)

// Config provides common options of create2 programs.
type Config struct {
	// Port is the serial device.
	Port string `yaml:"port"`
	// Baud is 115200 or 19200.
	Baud int `yaml:"baud"`
	// Timeout bounds a single serial read.
	Timeout time.Duration `yaml:"timeout"`
	// BannerWait is how long to collect the startup banner after open.
	BannerWait time.Duration `yaml:"banner-wait"`
	// PollInterval and MaxAttempts bound a response wait.
	PollInterval time.Duration `yaml:"poll-interval"`
	MaxAttempts  int           `yaml:"max-attempts"`

	// ID identifies the robot in telemetry topics.
	ID string `yaml:"id"`
	// MQTTBrokerURL specifies the MQTT broker to use.
	// e.g. mqtt://host:port/topic-prefix
	MQTTBrokerURL string `yaml:"mqtt"`
	// SampleInterval is the period of telemetry polls.
	SampleInterval time.Duration `yaml:"sample-interval"`
	// Block is the query block polled for telemetry.
	Block int `yaml:"block"`
	// Format of telemetry payloads: json or proto.
	Format string `yaml:"format"`
}

var defaultConfig = Config{
	Port:           "/dev/ttyUSB0",
	Baud:           serial.Baud115200,
	Timeout:        serial.DefaultTimeout,
	PollInterval:   comm.DefaultPollInterval,
	MaxAttempts:    comm.DefaultMaxAttempts,
	MQTTBrokerURL:  "mqtt://localhost:1883/create2/",
	SampleInterval: time.Second,
	Block:          int(sensors.BlockAll),
	Format:         "json",
}

// configFile is the YAML overlay used by Load.
var configFile string

func init() {
	if val := os.Getenv("CREATE2_PORT"); val != "" {
		defaultConfig.Port = val
	}
	if val := os.Getenv("CREATE2_BAUD"); val != "" {
		if baud, err := strconv.Atoi(val); err == nil {
			defaultConfig.Baud = baud
		}
	}
	if val := os.Getenv("CREATE2_MQTT_URL"); val != "" {
		defaultConfig.MQTTBrokerURL = val
	}
	if val := os.Getenv("CREATE2_ID"); val != "" {
		defaultConfig.ID = val
	} else {
		defaultConfig.ID = MachineID()
	}
	configFile = os.Getenv("CREATE2_CONFIG")
}

// MachineID retrieves the unique ID identifying the machine, or "create2"
// when it's not available.
func MachineID() string {
	id, err := machineid.ProtectedID("create2")
	if err != nil {
		return "create2"
	}
	return id
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&configFile, "config", configFile, "YAML config file")
	flag.StringVar(&defaultConfig.Port, "port", defaultConfig.Port, "Serial port")
	flag.IntVar(&defaultConfig.Baud, "baud", defaultConfig.Baud, "Baud rate, 115200 or 19200")
	flag.DurationVar(&defaultConfig.Timeout, "timeout", defaultConfig.Timeout, "Serial read timeout")
	flag.DurationVar(&defaultConfig.BannerWait, "banner-wait", defaultConfig.BannerWait, "Time to collect startup banner")
	flag.DurationVar(&defaultConfig.PollInterval, "poll-interval", defaultConfig.PollInterval, "Response poll interval")
	flag.IntVar(&defaultConfig.MaxAttempts, "max-attempts", defaultConfig.MaxAttempts, "Empty polls before a read times out")
	flag.StringVar(&defaultConfig.ID, "id", defaultConfig.ID, "Robot ID")
	flag.StringVar(&defaultConfig.MQTTBrokerURL, "mqtt", defaultConfig.MQTTBrokerURL, "MQTT broker URL")
	flag.DurationVar(&defaultConfig.SampleInterval, "sample-interval", defaultConfig.SampleInterval, "Telemetry sample interval")
	flag.IntVar(&defaultConfig.Block, "block", defaultConfig.Block, "Sensor block to sample")
	flag.StringVar(&defaultConfig.Format, "format", defaultConfig.Format, "Telemetry format, json or proto")
}

// Default gets default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a Config with default configurations.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// Load creates a Config from defaults, overlaid with the config file from
// -config or CREATE2_CONFIG if any. Flags explicitly set on the command
// line take precedence over the file.
func Load() (*Config, error) {
	conf := NewConfig()
	if configFile == "" {
		return conf, conf.Validate()
	}
	if err := conf.LoadFile(configFile); err != nil {
		return nil, err
	}
	flags := NewConfig()
	flag.Visit(func(f *flag.Flag) {
		conf.override(f.Name, flags)
	})
	return conf, conf.Validate()
}

func (c *Config) override(name string, from *Config) {
	switch name {
	case "port":
		c.Port = from.Port
	case "baud":
		c.Baud = from.Baud
	case "timeout":
		c.Timeout = from.Timeout
	case "banner-wait":
		c.BannerWait = from.BannerWait
	case "poll-interval":
		c.PollInterval = from.PollInterval
	case "max-attempts":
		c.MaxAttempts = from.MaxAttempts
	case "id":
		c.ID = from.ID
	case "mqtt":
		c.MQTTBrokerURL = from.MQTTBrokerURL
	case "sample-interval":
		c.SampleInterval = from.SampleInterval
	case "block":
		c.Block = from.Block
	case "format":
		c.Format = from.Format
	}
}

// LoadFile overlays the YAML file on c. Keys not in the file keep their
// values.
func (c *Config) LoadFile(fn string) error {
	data, err := os.ReadFile(fn)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("config %s: %w", fn, err)
	}
	return nil
}

// Validate checks the values.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("serial port must be specified")
	}
	if !serial.ValidBaud(c.Baud) {
		return fmt.Errorf("unsupported baud rate %d", c.Baud)
	}
	if c.Block < 0 || c.Block > 255 {
		return fmt.Errorf("unknown sensor block %d", c.Block)
	}
	if _, ok := sensors.Default.BlockSize(sensors.BlockID(c.Block)); !ok {
		return fmt.Errorf("unknown sensor block %d", c.Block)
	}
	switch c.Format {
	case "json", "proto":
	default:
		return fmt.Errorf("unknown format %q", c.Format)
	}
	return nil
}

// Options returns the connection options.
func (c *Config) Options() comm.Options {
	return comm.Options{
		Options: serial.Options{
			Timeout:    c.Timeout,
			BannerWait: c.BannerWait,
		},
		PollInterval: c.PollInterval,
		MaxAttempts:  c.MaxAttempts,
	}
}
