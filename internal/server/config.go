package server

import "os"

type Config struct {
	Port      string
	DbType    string
	DbConnStr string
}

func GrabConfigFromEnv() *Config {
	var c Config
	// Grab port
	c.Port = os.Getenv("STAMP_PORT")
	if c.Port != "" {
		c.Port = ":" + c.Port
	}
	// Grab database type (PostgreSQL or SQLite)
	c.DbType = os.Getenv("STAMP_DBTYPE")
	// Grab connection string
	c.DbConnStr = os.Getenv("STAMP_DBCONNSTR")
	return &c
}

func DefaultedConfig() *Config {
	c := GrabConfigFromEnv()
	// Check Port
	if c.Port == "" {
		c.Port = ":27183"
	}
	// Check DbType
	if c.DbType == "" {
		c.DbType = "sqlite"
	}
	// Check conn string
	if c.DbConnStr == "" {
		switch c.DbType {
		case "postgres":
			c.DbConnStr = grabPGConnStrFromEnv()
		default:
			c.DbConnStr = ":memory:"
		}
	}
	return c
}

func grabPGConnStrFromEnv() string {
	host := os.Getenv("STAMP_DBHOST")
	if host == "" {
		host = "localhost"
	}
	port := os.Getenv("STAMP_DBPORT")
	if port == "" {
		port = "5432"
	}
	ssl := os.Getenv("STAMP_DBSSL")
	if ssl == "" {
		ssl = "disable"
	}
	return NewPGConnString(
		host, port,
		os.Getenv("STAMP_DBNAME"),
		os.Getenv("STAMP_DBUSER"),
		os.Getenv("STAMP_DBPASSWORD"),
		ssl,
	)
}
