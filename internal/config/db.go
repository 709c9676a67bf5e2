package config

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

// DB holds the database configuration settings.
type DB struct {
	Driver   string // sqlite, mysql, postgres or mongo
	Extras   string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	Path     string // file path for sqlite
	URI      string // full connection string, used by mongo (MONGO_URI)

	// SlowQueryThreshold logs gorm queries slower than this as warnings.
	SlowQueryThreshold Duration
}
