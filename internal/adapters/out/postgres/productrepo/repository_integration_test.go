package productrepo_test

import (
	"context"
	"testing"
	"time"

	"onlineshop/internal/adapters/out/postgres/productrepo"
	"onlineshop/internal/core/domain/model/kernel"
	"onlineshop/internal/core/domain/model/product"
	"onlineshop/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

type ProductRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *productrepo.GormProductRepository
	tracker    *MockAggregateTracker
}

func (suite *ProductRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&productrepo.ProductDTO{}))
}

func (suite *ProductRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE products").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = productrepo.NewGormProductRepository(suite.db, suite.tracker)
}

func (suite *ProductRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ProductRepositoryIntegrationTestSuite) addProduct(name string, stock int) *product.Product {
	p, err := product.NewProduct(kernel.NewUUID(), name, stock)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(context.Background(), p))
	return p
}

func (suite *ProductRepositoryIntegrationTestSuite) TestAdd_And_Get() {
	p := suite.addProduct("Keyboard", 12)

	loaded, err := suite.repository.Get(context.Background(), p.ID())

	suite.Require().NoError(err)
	suite.Equal(p.ID(), loaded.ID())
	suite.Equal("Keyboard", loaded.Name())
	suite.Equal(12, loaded.Stock())
	suite.tracker.AssertCalled(suite.T(), "TrackAggregate", p.ID(), p)
}

func (suite *ProductRepositoryIntegrationTestSuite) TestUpdate_WritesStockDownToZero() {
	ctx := context.Background()
	p := suite.addProduct("Mouse", 2)

	suite.Require().NoError(p.DecreaseStock(2))
	suite.Require().NoError(suite.repository.Update(ctx, p))

	loaded, err := suite.repository.Get(ctx, p.ID())
	suite.Require().NoError(err)
	suite.Equal(0, loaded.Stock())

	suite.Require().NoError(loaded.IncreaseStock(5))
	suite.Require().NoError(suite.repository.Update(ctx, loaded))

	reloaded, err := suite.repository.Get(ctx, p.ID())
	suite.Require().NoError(err)
	suite.Equal(5, reloaded.Stock())
}

func (suite *ProductRepositoryIntegrationTestSuite) TestStockCheckConstraint() {
	p := suite.addProduct("Cable", 1)

	err := suite.db.Exec("UPDATE products SET stock = -1 WHERE id = ?", p.ID().Google()).Error

	suite.Error(err, "negative stock violates the check constraint")
}

func (suite *ProductRepositoryIntegrationTestSuite) TestUpdate_MissingProduct() {
	p, err := product.NewProduct(kernel.NewUUID(), "Ghost", 1)
	suite.Require().NoError(err)

	suite.ErrorIs(suite.repository.Update(context.Background(), p), gorm.ErrRecordNotFound)
}

func (suite *ProductRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.ErrorIs(err, errs.ErrObjectNotFound)
	suite.Contains(err.Error(), "product")
}

func (suite *ProductRepositoryIntegrationTestSuite) TestGetForUpdate_InsideTransaction() {
	ctx := context.Background()
	p := suite.addProduct("Monitor", 3)

	err := suite.db.Transaction(func(tx *gorm.DB) error {
		repo := productrepo.NewGormProductRepository(tx, suite.tracker)
		locked, err := repo.GetForUpdate(ctx, p.ID())
		if err != nil {
			return err
		}
		if err := locked.DecreaseStock(1); err != nil {
			return err
		}
		return repo.Update(ctx, locked)
	})
	suite.Require().NoError(err)

	loaded, err := suite.repository.Get(ctx, p.ID())
	suite.Require().NoError(err)
	suite.Equal(2, loaded.Stock())
}

func TestProductRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}
	suite.Run(t, new(ProductRepositoryIntegrationTestSuite))
}
