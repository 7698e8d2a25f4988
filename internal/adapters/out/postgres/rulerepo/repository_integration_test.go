package rulerepo_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"ordering/internal/adapters/out/postgres/rulerepo"
	"ordering/internal/core/domain/model/wholesale"
)

type RuleRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *rulerepo.GormRuleRepository
}

func (suite *RuleRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&rulerepo.RuleDTO{}))
}

func (suite *RuleRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE wholesale_rules RESTART IDENTITY").Error)
	suite.repository = rulerepo.NewGormRuleRepository(suite.db)
}

func (suite *RuleRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *RuleRepositoryIntegrationTestSuite) TestListActive_SkipsInactiveInIDOrder() {
	ctx := context.Background()
	productID := int64(7)

	minAmount, err := suite.repository.Add(ctx, wholesale.Rule{
		Type: wholesale.MinOrderAmount, Value: decimal.RequireFromString("500"), IsActive: true,
	})
	suite.Require().NoError(err)
	_, err = suite.repository.Add(ctx, wholesale.Rule{
		Type: wholesale.MinQuantity, ProductID: &productID, Value: decimal.RequireFromString("10"), IsActive: false,
	})
	suite.Require().NoError(err)
	multiple, err := suite.repository.Add(ctx, wholesale.Rule{
		Type: wholesale.Multiplicity, ProductID: &productID, Value: decimal.RequireFromString("6"), IsActive: true,
	})
	suite.Require().NoError(err)

	rules, err := suite.repository.ListActive(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(rules, 2)

	suite.Equal(minAmount.ID, rules[0].ID)
	suite.True(rules[0].IsGlobal())
	suite.Equal(wholesale.MinOrderAmount, rules[0].Type)

	suite.Equal(multiple.ID, rules[1].ID)
	suite.Require().NotNil(rules[1].ProductID)
	suite.Equal(productID, *rules[1].ProductID)
	suite.True(decimal.RequireFromString("6").Equal(rules[1].Value))
}

func (suite *RuleRepositoryIntegrationTestSuite) TestAdd_UnknownType_ReturnsError() {
	_, err := suite.repository.Add(context.Background(), wholesale.Rule{Type: "max_weight", IsActive: true})
	suite.Require().Error(err)
	suite.Contains(err.Error(), "ruleType")
}

func TestRuleRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(RuleRepositoryIntegrationTestSuite))
}
