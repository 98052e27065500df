package redis_repo

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type ProductStockRepoTestSuite struct {
	suite.Suite
	mr          *miniredis.Miniredis
	productRepo *ProductStockRedisRepo
}

func TestProductStockRepoTestSuite(t *testing.T) {
	suite.Run(t, new(ProductStockRepoTestSuite))
}

func (suite *ProductStockRepoTestSuite) SetupTest() {
	suite.mr = miniredis.RunT(suite.T())
	rdb, err := NewRedisClient(context.Background(), suite.mr.Addr(), "", 0)
	require.NoError(suite.T(), err)
	suite.T().Cleanup(func() { rdb.Close() })
	suite.productRepo = NewProductStockRedisRepo(rdb)
}

func (suite *ProductStockRepoTestSuite) TestSetAndGetProductStock() {
	ctx := context.Background()

	err := suite.productRepo.SetProductStock(ctx, 1, 7)
	assert.NoError(suite.T(), err)

	stock, err := suite.productRepo.GetProductStock(ctx, 1)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 7, stock)

	// 覆寫
	err = suite.productRepo.SetProductStock(ctx, 1, 0)
	assert.NoError(suite.T(), err)
	stock, err = suite.productRepo.GetProductStock(ctx, 1)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 0, stock)

	assert.Equal(suite.T(), "0", suite.mr.HGet("product:1:stock", "stock"))
}

func (suite *ProductStockRepoTestSuite) TestGetProductStock_NotCached() {
	_, err := suite.productRepo.GetProductStock(context.Background(), 42)
	assert.ErrorIs(suite.T(), err, ErrProductStockNotCached)
}

func (suite *ProductStockRepoTestSuite) TestDeleteProductStock() {
	ctx := context.Background()
	require.NoError(suite.T(), suite.productRepo.SetProductStock(ctx, 2, 5))
	require.NoError(suite.T(), suite.productRepo.DeleteProductStock(ctx, 2))

	_, err := suite.productRepo.GetProductStock(ctx, 2)
	assert.ErrorIs(suite.T(), err, ErrProductStockNotCached)
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewRedisClient(context.Background(), addr, "", 0)
	require.Error(t, err)
}
