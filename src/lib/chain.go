package lib

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"lvs/src/config"
	"lvs/src/utils"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
)

// ChainBackend is the narrow escrow-contract surface the verifier needs:
// a state-changing submit, a bounded wait for inclusion, and a read-only call.
type ChainBackend interface {
	Submit(ctx context.Context, contract common.Address, method string, args ...any) (common.Hash, error)
	WaitMined(ctx context.Context, tx common.Hash) error
	Call(ctx context.Context, contract common.Address, method string, result any, args ...any) error
}

// escrowClient submits through a node-managed account (eth_sendTransaction),
// so the node holds the key and does the signing.
type escrowClient struct {
	rpc  *rpc.Client
	eth  *ethclient.Client
	abi  abi.ABI
	from common.Address
}

var chainBackend ChainBackend

func GetChainBackend() (ChainBackend, error) {
	if chainBackend != nil {
		return chainBackend, nil
	}
	client, err := rpc.Dial(config.GetChainRPCURL())
	if err != nil {
		log.Printf("[chain] Error connecting to RPC node: %s\n", err.Error())
		return nil, err
	}
	contractABI, err := utils.LoadContractABI()
	if err != nil {
		log.Printf("[chain] Error loading contract ABI: %s\n", err.Error())
		return nil, err
	}
	from := common.HexToAddress(config.GetChainFromAccount())
	if from == (common.Address{}) {
		var accounts []common.Address
		if err := client.CallContext(context.Background(), &accounts, "eth_accounts"); err != nil {
			log.Printf("[chain] Error listing node accounts: %s\n", err.Error())
			return nil, err
		}
		if len(accounts) == 0 {
			return nil, errors.New("chain node manages no accounts and CHAIN_FROM_ACCOUNT is unset")
		}
		from = accounts[0]
	}
	chainBackend = &escrowClient{
		rpc:  client,
		eth:  ethclient.NewClient(client),
		abi:  contractABI,
		from: from,
	}
	return chainBackend, nil
}

// NewChainBackend Replace chain backend with custom implementation
func NewChainBackend(b ChainBackend) {
	chainBackend = b
}

func (c *escrowClient) Submit(ctx context.Context, contract common.Address, method string, args ...any) (common.Hash, error) {
	data, err := c.abi.Pack(method, args...)
	if err != nil {
		return common.Hash{}, err
	}
	var txHash common.Hash
	err = c.rpc.CallContext(ctx, &txHash, "eth_sendTransaction", map[string]any{
		"from": c.from,
		"to":   contract,
		"data": hexutil.Bytes(data),
	})
	return txHash, err
}

func (c *escrowClient) WaitMined(ctx context.Context, tx common.Hash) error {
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()
	for {
		receipt, err := c.eth.TransactionReceipt(ctx, tx)
		if err == nil {
			if receipt.Status != ethtypes.ReceiptStatusSuccessful {
				return fmt.Errorf("transaction %s reverted", tx.Hex())
			}
			return nil
		}
		if !errors.Is(err, ethereum.NotFound) {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (c *escrowClient) Call(ctx context.Context, contract common.Address, method string, result any, args ...any) error {
	data, err := c.abi.Pack(method, args...)
	if err != nil {
		return err
	}
	out, err := c.eth.CallContract(ctx, ethereum.CallMsg{From: c.from, To: &contract, Data: data}, nil)
	if err != nil {
		return err
	}
	return c.abi.UnpackIntoInterface(result, method, out)
}
