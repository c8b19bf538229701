package configuration

import (
	"fmt"
	"os"
	"strconv"

	"collab-notifier/infrastructure/logger"

	"github.com/spf13/viper"
)

type Config struct {
	App         App         `json:"app"`
	Database    Database    `json:"database"`
	RedisClient RedisClient `json:"redisClient"`
	YouTube     YouTube     `json:"youtube"`
	Twitter     Twitter     `json:"twitter"`
	Events      Events      `json:"events"`
	Pubsub      Pubsub      `json:"pubsub"`
	ServiceBus  ServiceBus  `json:"serviceBus"`
	Crawler     Crawler     `json:"crawler"`
	Cors        Cors        `json:"cors"`
}

type App struct {
	Port      int    `json:"port"`
	SecretKey string `json:"secretKey"`
}

type Database struct {
	Psql  Db    `json:"psql"`
	Mongo Mongo `json:"mongo"`
}

type Db struct {
	Name     string `json:"name"`
	Host     string `json:"host"`
	Port     string `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	SSLMode  string `json:"sslMode"`
}

type Mongo struct {
	URI  string `json:"uri"`
	Name string `json:"name"`
}

type RedisClient struct {
	Host       string `json:"host"`
	Port       string `json:"port"`
	Password   string `json:"password"`
	Username   string `json:"username"`
	TTLSeconds int    `json:"ttlSeconds"`
}

type YouTube struct {
	APIKey      string `json:"apiKey"`
	Concurrency int    `json:"concurrency"`
}

type Twitter struct {
	ClientID     string `json:"clientId"`
	ClientSecret string `json:"clientSecret"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	DryRun       bool   `json:"dryRun"`
}

// Events names the topics and subscriptions connecting the pipeline stages.
type Events struct {
	Transport            string `json:"transport"`
	SnapshotTopic        string `json:"snapshotTopic"`
	VideoTopic           string `json:"videoTopic"`
	SnapshotSubscription string `json:"snapshotSubscription"`
	VideoSubscription    string `json:"videoSubscription"`
}

type Pubsub struct {
	ProjectID string `json:"projectID"`
}

type ServiceBus struct {
	Namespace string `json:"namespace"`
}

type Crawler struct {
	Bucket         string   `json:"bucket"`
	ChannelListURL string   `json:"channelListURL"`
	Sources        []Source `json:"sources"`
}

// Source is one listing page. Snapshots of a source share its key prefix.
type Source struct {
	Name   string `json:"name"`
	URL    string `json:"url"`
	Prefix string `json:"prefix"`
	Layout string `json:"layout"`
}

type Cors struct {
	AllowOrigins []string `json:"allowOrigins"`
}

const (
	TransportPubSub     = "pubsub"
	TransportServiceBus = "servicebus"
)

var C Config

func init() {
	Reload()
}

// Reload reads the config file and environment again, e.g. after
// LoadEnvFromFile added variables.
func Reload() {
	C = Config{}
	LoadConfig()
	initDatabase(&C)
	initApp(&C)
	initEvents(&C)
}

func LoadConfig() {
	name := getConfig()
	viper.SetConfigName(name)
	viper.SetConfigType("json")
	viper.AddConfigPath(".")
	viper.AddConfigPath("../")
	viper.AddConfigPath("../../")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			logger.GetLogger().Warn("Config file not found")
		} else {
			logger.GetLogger().WithField("error", err).Error("Error reading config file")
		}
	}

	logger.GetLogger().WithField("config", name).Info("Config set up successfully")
	if err := viper.Unmarshal(&C); err != nil {
		logger.GetLogger().WithField("error", err).Error("Viper unable to decode into struct")
	}
}

func getConfig() string {
	name := "config"
	env := os.Getenv("ENV")
	if env != "" {
		name = fmt.Sprintf("%s-%s", name, env)
	}
	return name
}

func initDatabase(C *Config) {
	C.Database.Psql.Name = getConfigValue(C.Database.Psql.Name, "DB_NAME", "collab")
	C.Database.Psql.Host = getConfigValue(C.Database.Psql.Host, "DB_HOST", "localhost")
	C.Database.Psql.Port = getConfigValue(C.Database.Psql.Port, "DB_PORT", "5432")
	C.Database.Psql.User = getConfigValue(C.Database.Psql.User, "DB_USER", "postgres")
	C.Database.Psql.Password = getConfigValue(C.Database.Psql.Password, "DB_PASSWORD", "")
	C.Database.Psql.SSLMode = getConfigValue(C.Database.Psql.SSLMode, "DB_SSLMODE", "disable")

	C.Database.Mongo.URI = getConfigValue(C.Database.Mongo.URI, "MONGO_URI", "mongodb://localhost:27017")
	C.Database.Mongo.Name = getConfigValue(C.Database.Mongo.Name, "MONGO_DB_NAME", "collab")

	C.RedisClient.Host = getConfigValue(C.RedisClient.Host, "REDIS_HOST", "localhost")
	C.RedisClient.Port = getConfigValue(C.RedisClient.Port, "REDIS_PORT", "6379")
	C.RedisClient.Password = getConfigValue(C.RedisClient.Password, "REDIS_PASSWORD", "")
	if C.RedisClient.TTLSeconds == 0 {
		C.RedisClient.TTLSeconds = 600
	}
}

func initApp(C *Config) {
	// SECRET_KEY from the environment wins over the config file
	if v := os.Getenv("SECRET_KEY"); v != "" {
		C.App.SecretKey = v
	}
	// APP_PORT -> PORT -> config -> 10001
	if v := os.Getenv("APP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			C.App.Port = p
		}
	} else if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			C.App.Port = p
		}
	}
	if C.App.Port == 0 {
		C.App.Port = 10001
	}
	if C.App.SecretKey == "" {
		logger.GetLogger().Warn("App.SecretKey not set; JWT authentication will fail. Provide SECRET_KEY via environment.")
	}
	if len(C.Cors.AllowOrigins) == 0 {
		C.Cors.AllowOrigins = []string{"http://localhost:4200"}
	}
}

func initEvents(C *Config) {
	C.Events.Transport = getConfigValue(C.Events.Transport, "EVENTS_TRANSPORT", TransportPubSub)
	C.Events.SnapshotTopic = getConfigValue(C.Events.SnapshotTopic, "SNAPSHOT_TOPIC", "snapshot-stored")
	C.Events.VideoTopic = getConfigValue(C.Events.VideoTopic, "VIDEO_TOPIC", "video-changed")
	C.Events.SnapshotSubscription = getConfigValue(C.Events.SnapshotSubscription, "SNAPSHOT_SUBSCRIPTION", "snapshot-stored-video")
	C.Events.VideoSubscription = getConfigValue(C.Events.VideoSubscription, "VIDEO_SUBSCRIPTION", "video-changed-notifier")
	C.Pubsub.ProjectID = getConfigValue(C.Pubsub.ProjectID, "GOOGLE_CLOUD_PROJECT", "")
	C.ServiceBus.Namespace = getConfigValue(C.ServiceBus.Namespace, "SERVICEBUS_NAMESPACE", "")
	C.Crawler.Bucket = getConfigValue(C.Crawler.Bucket, "SNAPSHOT_BUCKET", "collab-snapshots")
}
