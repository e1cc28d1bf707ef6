package ethereum_test

import (
	"context"
	"errors"
	"math/big"
	"os"
	"strings"
	"testing"
	"time"

	goethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixelplot/tile-indexer/internal/domain"
	"github.com/pixelplot/tile-indexer/internal/logger"
	"github.com/pixelplot/tile-indexer/internal/mocks"
	"github.com/pixelplot/tile-indexer/internal/providers/ethereum"
)

const (
	testTilesAddress  = "0x1111111111111111111111111111111111111111"
	testMarketAddress = "0x2222222222222222222222222222222222222222"
	testOwner         = "0x3333333333333333333333333333333333333333"
)

// fixtureABI mirrors the contract surface the reader consumes, used to
// encode call results and log payloads for the mocked RPC transport.
const fixtureABI = `[
	{"anonymous":false,"inputs":[{"indexed":true,"name":"owner","type":"address"},{"indexed":true,"name":"tileId","type":"uint256"},{"indexed":false,"name":"metadataURI","type":"string"},{"indexed":false,"name":"nativePayment","type":"bool"}],"name":"TileMinted","type":"event"},
	{"constant":true,"inputs":[{"name":"tileId","type":"uint256"}],"name":"getTile","outputs":[{"name":"owner","type":"address"},{"name":"metadataURI","type":"string"},{"name":"nativePayment","type":"bool"},{"name":"exists","type":"bool"}],"payable":false,"stateMutability":"view","type":"function"},
	{"constant":true,"inputs":[{"name":"tileId","type":"uint256"}],"name":"exists","outputs":[{"name":"","type":"bool"}],"payable":false,"stateMutability":"view","type":"function"},
	{"constant":true,"inputs":[{"name":"tileId","type":"uint256"}],"name":"getListing","outputs":[{"name":"forSale","type":"bool"},{"name":"forRent","type":"bool"},{"name":"rented","type":"bool"},{"name":"salePrice","type":"uint256"},{"name":"rentPricePerDay","type":"uint256"},{"name":"renter","type":"address"},{"name":"rentalEnd","type":"uint256"}],"payable":false,"stateMutability":"view","type":"function"}
]`

var fixture abi.ABI

func TestMain(m *testing.M) {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	fixture, err = abi.JSON(strings.NewReader(fixtureABI))
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

func newTestClient(t *testing.T, eth *mocks.MockEthClient, marketplace string) ethereum.Client {
	t.Helper()
	client, err := ethereum.NewClient(eth, testTilesAddress, marketplace, 5*time.Second)
	require.NoError(t, err)
	return client
}

// mintedLog encodes a TileMinted log the way the chain would emit it
func mintedLog(t *testing.T, owner string, tileID uint64, metadataURI string, nativePayment bool, block uint64, txIndex uint) types.Log {
	t.Helper()
	data, err := fixture.Events["TileMinted"].Inputs.NonIndexed().Pack(metadataURI, nativePayment)
	require.NoError(t, err)

	return types.Log{
		Address: common.HexToAddress(testTilesAddress),
		Topics: []common.Hash{
			fixture.Events["TileMinted"].ID,
			common.BytesToHash(common.HexToAddress(owner).Bytes()),
			common.BigToHash(new(big.Int).SetUint64(tileID)),
		},
		Data:        data,
		BlockNumber: block,
		TxIndex:     txIndex,
		TxHash:      common.HexToHash("0xdead"),
	}
}

func TestNewClient_RequiresTilesContract(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	eth := mocks.NewMockEthClient(ctrl)
	_, err := ethereum.NewClient(eth, "", "", time.Second)
	assert.ErrorIs(t, err, domain.ErrConfigurationMissing)
}

func TestClient_LatestBlock(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	eth := mocks.NewMockEthClient(ctrl)
	client := newTestClient(t, eth, "")

	eth.EXPECT().
		HeaderByNumber(gomock.Any(), nil).
		Return(&types.Header{Number: big.NewInt(123456)}, nil)

	latest, err := client.LatestBlock(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, uint64(123456), latest)
}

func TestClient_LatestBlock_Failure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	eth := mocks.NewMockEthClient(ctrl)
	client := newTestClient(t, eth, "")

	eth.EXPECT().
		HeaderByNumber(gomock.Any(), nil).
		Return(nil, errors.New("rpc down"))

	_, err := client.LatestBlock(context.Background())
	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
}

func TestClient_FetchCreationEvents(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	eth := mocks.NewMockEthClient(ctrl)
	client := newTestClient(t, eth, "")

	logs := []types.Log{
		mintedLog(t, testOwner, 45, "ipfs://Qm1", true, 100, 0),
		mintedLog(t, testOwner, 46, "ipfs://Qm2", false, 101, 3),
	}

	eth.EXPECT().
		FilterLogs(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, query goethereum.FilterQuery) ([]types.Log, error) {
			assert.Equal(t, uint64(100), query.FromBlock.Uint64())
			assert.Equal(t, uint64(200), query.ToBlock.Uint64())
			assert.Equal(t, []common.Address{common.HexToAddress(testTilesAddress)}, query.Addresses)
			assert.Equal(t, [][]common.Hash{{fixture.Events["TileMinted"].ID}}, query.Topics)
			return logs, nil
		})

	events, err := client.FetchCreationEvents(context.Background(), 100, 200)
	assert.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, domain.TileID(45), events[0].TileID)
	assert.Equal(t, common.HexToAddress(testOwner).Hex(), events[0].Owner)
	assert.Equal(t, "ipfs://Qm1", events[0].MetadataRef)
	assert.True(t, events[0].NativePayment)
	assert.Equal(t, uint64(100), events[0].BlockNumber)

	assert.Equal(t, domain.TileID(46), events[1].TileID)
	assert.False(t, events[1].NativePayment)
	assert.Equal(t, uint64(3), events[1].TxIndex)
}

func TestClient_FetchCreationEvents_MalformedLogSkipped(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	eth := mocks.NewMockEthClient(ctrl)
	client := newTestClient(t, eth, "")

	broken := types.Log{
		Topics: []common.Hash{fixture.Events["TileMinted"].ID}, // missing indexed topics
	}
	logs := []types.Log{
		broken,
		mintedLog(t, testOwner, 45, "ipfs://Qm1", true, 100, 0),
	}

	eth.EXPECT().
		FilterLogs(gomock.Any(), gomock.Any()).
		Return(logs, nil)

	events, err := client.FetchCreationEvents(context.Background(), 0, 100)
	assert.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, domain.TileID(45), events[0].TileID)
}

func TestClient_FetchCreationEvents_RangeFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	eth := mocks.NewMockEthClient(ctrl)
	client := newTestClient(t, eth, "")

	eth.EXPECT().
		FilterLogs(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("query timeout"))

	_, err := client.FetchCreationEvents(context.Background(), 0, 100)
	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
}

func TestClient_FetchTile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	eth := mocks.NewMockEthClient(ctrl)
	client := newTestClient(t, eth, "")

	result, err := fixture.Methods["getTile"].Outputs.Pack(
		common.HexToAddress(testOwner), "ipfs://Qm1", true, true)
	require.NoError(t, err)

	eth.EXPECT().
		CallContract(gomock.Any(), gomock.Any(), nil).
		DoAndReturn(func(_ context.Context, msg goethereum.CallMsg, _ *big.Int) ([]byte, error) {
			assert.Equal(t, common.HexToAddress(testTilesAddress), *msg.To)
			return result, nil
		})

	record, err := client.FetchTile(context.Background(), 45)
	assert.NoError(t, err)
	assert.Equal(t, domain.TileID(45), record.TileID)
	assert.Equal(t, common.HexToAddress(testOwner).Hex(), record.Owner)
	assert.Equal(t, "ipfs://Qm1", record.MetadataRef)
	assert.True(t, record.NativePayment)
	assert.True(t, record.Exists)
}

func TestClient_FetchTile_NonExistent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	eth := mocks.NewMockEthClient(ctrl)
	client := newTestClient(t, eth, "")

	result, err := fixture.Methods["getTile"].Outputs.Pack(
		common.Address{}, "", false, false)
	require.NoError(t, err)

	eth.EXPECT().
		CallContract(gomock.Any(), gomock.Any(), nil).
		Return(result, nil)

	record, err := client.FetchTile(context.Background(), 9999)
	assert.NoError(t, err)
	assert.False(t, record.Exists)
}

func TestClient_FetchTile_CallFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	eth := mocks.NewMockEthClient(ctrl)
	client := newTestClient(t, eth, "")

	eth.EXPECT().
		CallContract(gomock.Any(), gomock.Any(), nil).
		Return(nil, errors.New("execution reverted"))

	_, err := client.FetchTile(context.Background(), 45)
	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
}

func TestClient_TileExists(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	eth := mocks.NewMockEthClient(ctrl)
	client := newTestClient(t, eth, "")

	result, err := fixture.Methods["exists"].Outputs.Pack(true)
	require.NoError(t, err)

	eth.EXPECT().
		CallContract(gomock.Any(), gomock.Any(), nil).
		Return(result, nil)

	exists, err := client.TileExists(context.Background(), 45)
	assert.NoError(t, err)
	assert.True(t, exists)
}

func TestClient_FetchMarketListing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	eth := mocks.NewMockEthClient(ctrl)
	client := newTestClient(t, eth, testMarketAddress)
	assert.True(t, client.MarketConfigured())

	rentalEnd := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	result, err := fixture.Methods["getListing"].Outputs.Pack(
		true, true, true,
		big.NewInt(1000000000000000000),
		big.NewInt(50000000000000000),
		common.HexToAddress(testOwner),
		big.NewInt(rentalEnd.Unix()))
	require.NoError(t, err)

	eth.EXPECT().
		CallContract(gomock.Any(), gomock.Any(), nil).
		DoAndReturn(func(_ context.Context, msg goethereum.CallMsg, _ *big.Int) ([]byte, error) {
			assert.Equal(t, common.HexToAddress(testMarketAddress), *msg.To)
			return result, nil
		})

	overlay, err := client.FetchMarketListing(context.Background(), 45)
	assert.NoError(t, err)
	require.NotNil(t, overlay)
	assert.Equal(t, domain.TileID(45), overlay.TileID)
	assert.True(t, overlay.ForSale)
	assert.True(t, overlay.ForRent)
	assert.True(t, overlay.Rented)
	assert.Equal(t, "1000000000000000000", overlay.SalePrice.String())
	assert.Equal(t, "50000000000000000", overlay.RentPricePerDay.String())
	assert.Equal(t, common.HexToAddress(testOwner).Hex(), overlay.Renter)
	assert.Equal(t, rentalEnd, overlay.RentalEnd)
}

func TestClient_FetchMarketListing_Unconfigured(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	eth := mocks.NewMockEthClient(ctrl)
	client := newTestClient(t, eth, "")
	assert.False(t, client.MarketConfigured())

	overlay, err := client.FetchMarketListing(context.Background(), 45)
	assert.NoError(t, err)
	assert.Nil(t, overlay)
}
