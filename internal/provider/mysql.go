package provider

import (
	"fmt"
	"time"

	"github.com/evyataryagoni/geolocate/internal/models"
	"github.com/evyataryagoni/geolocate/internal/provider/regiondata"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// GeoRecordModel is the GORM model for the geo_records table. Latitude and
// longitude are nullable columns so an absent coordinate survives the round
// trip through the database.
type GeoRecordModel struct {
	IP           string   `gorm:"column:ip;primaryKey"`
	City         string   `gorm:"column:city"`
	RegionCode   string   `gorm:"column:region_code"`
	PostalCode   string   `gorm:"column:postal_code"`
	Latitude     *float64 `gorm:"column:latitude"`
	Longitude    *float64 `gorm:"column:longitude"`
	AreaCode     int      `gorm:"column:area_code"`
	CountryCode2 string   `gorm:"column:country_code2"`
}

// TableName overrides GORM's default pluralized name.
func (GeoRecordModel) TableName() string {
	return "geo_records"
}

// MySQLProvider implements Provider using MySQL with GORM.
type MySQLProvider struct {
	db *gorm.DB
}

// NewMySQLProvider opens a GORM connection with a configured pool and pings
// the database.
//
// dsn format: user:password@tcp(host:port)/dbname?parseTime=true
func NewMySQLProvider(dsn string) (*MySQLProvider, error) {
	config := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	db, err := gorm.Open(mysql.Open(dsn), config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MySQL with GORM: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping MySQL database: %w", err)
	}

	return &MySQLProvider{db: db}, nil
}

func (p *MySQLProvider) fetch(ip string) (*GeoRecordModel, error) {
	var row GeoRecordModel

	result := p.db.Where("ip = ?", ip).First(&row)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database query failed: %w", result.Error)
	}

	return &row, nil
}

// LookupRecord implements the Provider interface.
func (p *MySQLProvider) LookupRecord(ip string) (*models.GeoRecord, error) {
	row, err := p.fetch(ip)
	if err != nil {
		return nil, err
	}
	return &models.GeoRecord{
		IP:         row.IP,
		City:       row.City,
		RegionCode: row.RegionCode,
		PostalCode: row.PostalCode,
		Latitude:   row.Latitude,
		Longitude:  row.Longitude,
		AreaCode:   row.AreaCode,
	}, nil
}

// LookupCountryName implements the Provider interface.
func (p *MySQLProvider) LookupCountryName(ip string) (string, error) {
	row, err := p.fetch(ip)
	if err != nil {
		return "", err
	}
	name, ok := countryName(row.CountryCode2)
	if !ok {
		return "", ErrNotFound
	}
	return name, nil
}

// LookupCountryCode implements the Provider interface.
func (p *MySQLProvider) LookupCountryCode(ip string, letters int) (string, error) {
	if letters != 2 && letters != 3 {
		return "", fmt.Errorf("country code length must be 2 or 3, got %d", letters)
	}
	row, err := p.fetch(ip)
	if err != nil {
		return "", err
	}
	code, ok := countryCode(row.CountryCode2, letters)
	if !ok {
		return "", ErrNotFound
	}
	return code, nil
}

// LookupContinentCode implements the Provider interface.
func (p *MySQLProvider) LookupContinentCode(ip string) (string, error) {
	row, err := p.fetch(ip)
	if err != nil {
		return "", err
	}
	code, ok := continentCode(row.CountryCode2)
	if !ok {
		return "", ErrNotFound
	}
	return code, nil
}

// LookupRegionName implements the Provider interface.
func (p *MySQLProvider) LookupRegionName(countryCode2, regionCode string) (string, error) {
	name, ok := regiondata.RegionName(countryCode2, regionCode)
	if !ok {
		return "", ErrNotFound
	}
	return name, nil
}

// LookupTimezone implements the Provider interface.
func (p *MySQLProvider) LookupTimezone(countryCode2, regionCode string) (string, error) {
	tz, ok := regiondata.Timezone(countryCode2, regionCode)
	if !ok {
		return "", ErrNotFound
	}
	return tz, nil
}

// Close closes the database connection.
func (p *MySQLProvider) Close() error {
	if p.db != nil {
		sqlDB, err := p.db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}
