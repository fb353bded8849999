package devops

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// DatabasesParameter is the SSM parameter holding the yaml database list.
const DatabasesParameter = "databases"

type DBEntry struct {
	Name     string `yaml:"name"`
	Host     string `yaml:"host"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Dialect  string `yaml:"dialect"`
}

// GetDSN builds a connection string for dbname on this server.
func (db DBEntry) GetDSN(dbname string) string {
	if strings.EqualFold(db.Dialect, "postgres") {
		host, port := db.Host, "5432"
		if h, p, ok := strings.Cut(db.Host, ":"); ok {
			host, port = h, p
		}
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=require", host, port, db.Username, db.Password, dbname)
	}

	host := db.Host
	if !strings.Contains(host, ":") {
		host = host + ":3306"
	}
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true", db.Username, db.Password, host, dbname)
}

var (
	once    sync.Once
	dbList  []DBEntry
	loadErr error
)

// LoadDBConfig fetches the database list from SSM once per process.
func LoadDBConfig(ctx context.Context) ([]DBEntry, error) {
	once.Do(func() {
		cfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			loadErr = fmt.Errorf("load aws config: %w", err)
			return
		}

		client := ssm.NewFromConfig(cfg)

		out, err := client.GetParameter(ctx, &ssm.GetParameterInput{
			Name:           aws.String(DatabasesParameter),
			WithDecryption: aws.Bool(true),
		})
		if err != nil {
			loadErr = fmt.Errorf("get parameter: %w", err)
			return
		}
		if out.Parameter == nil || out.Parameter.Value == nil {
			loadErr = fmt.Errorf("parameter %s is empty", DatabasesParameter)
			return
		}

		dbList, loadErr = ParseDBEntries([]byte(*out.Parameter.Value))
	})

	return dbList, loadErr
}

func ParseDBEntries(data []byte) ([]DBEntry, error) {
	var parsed []DBEntry
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("unmarshal yaml: %w", err)
	}
	return parsed, nil
}

// FindDBEntry picks the entry whose name matches, ignoring case.
func FindDBEntry(entries []DBEntry, name string) (DBEntry, error) {
	for _, e := range entries {
		if strings.EqualFold(e.Name, name) {
			return e, nil
		}
	}
	return DBEntry{}, fmt.Errorf("no database entry named %q", name)
}
