package main

import (
	"bytes"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledger-core/blockchain"
	"ledger-core/chaincfg"
	"ledger-core/config"
	"ledger-core/crypto"
	"ledger-core/database"
	"ledger-core/txscript"
)

const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func runCmd(t *testing.T, cfg *config.Config, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(cfg)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		Network:  "main",
		LogLevel: "error",
		DataDir:  t.TempDir(),
		CoinType: 1,
	}
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, parseLogLevel("debug"))
	assert.Equal(t, logrus.WarnLevel, parseLogLevel("warn"))
	assert.Equal(t, logrus.InfoLevel, parseLogLevel("verbose"))
}

func TestBuildCommand(t *testing.T) {
	out, err := runCmd(t, testConfig(t), "build", "--network", "regtest")
	require.NoError(t, err)

	block, err := blockchain.NewGenesisBlock(&chaincfg.RegressionNetParams)
	require.NoError(t, err)
	raw, err := block.Bytes()
	require.NoError(t, err)

	assert.Contains(t, out, "network:      regtest")
	assert.Contains(t, out, block.BlockHash().String())
	assert.Contains(t, out, block.Header.MerkleRoot.String())
	assert.Contains(t, out, "ldgrt1q")
	assert.Contains(t, out, hex.EncodeToString(raw))
}

func TestBuildCommandPersist(t *testing.T) {
	cfg := testConfig(t)
	_, err := runCmd(t, cfg, "build", "--network", "test", "--persist")
	require.NoError(t, err)

	// Rebuilding the same network is accepted, another one is not.
	_, err = runCmd(t, cfg, "build", "--network", "test", "--persist")
	require.NoError(t, err)
	_, err = runCmd(t, cfg, "build", "--network", "regtest", "--persist")
	require.ErrorIs(t, err, database.ErrGenesisMismatch)

	storage, err := database.NewStorage(cfg.DataDir)
	require.NoError(t, err)
	defer storage.Close()

	block, err := blockchain.NewGenesisBlock(&chaincfg.TestNetParams)
	require.NoError(t, err)
	hash, err := storage.GenesisHash()
	require.NoError(t, err)
	assert.Equal(t, block.BlockHash(), hash)
}

func TestBuildCommandUnknownNetwork(t *testing.T) {
	_, err := runCmd(t, testConfig(t), "build", "--network", "nope")
	require.ErrorIs(t, err, chaincfg.ErrUnknownNetwork)
}

func TestAddressCommand(t *testing.T) {
	const keyHash = "751e76e8199196d454941c45d1b3a323f1433bd6"
	h, err := txscript.NewWitnessV0KeyHashFromHex(keyHash)
	require.NoError(t, err)
	want, err := h.Address(chaincfg.TestNetParams.Bech32HRP)
	require.NoError(t, err)

	out, err := runCmd(t, testConfig(t), "address", "--network", "test", keyHash)
	require.NoError(t, err)
	assert.Equal(t, want+"\n", out)

	out, err = runCmd(t, testConfig(t), "address", "--network", "test", "--pubkey",
		"0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798")
	require.NoError(t, err)
	assert.Equal(t, want+"\n", out)

	_, err = runCmd(t, testConfig(t), "address", "ab")
	require.ErrorIs(t, err, txscript.ErrInvalidHashLength)
}

func TestDeriveCommand(t *testing.T) {
	out, err := runCmd(t, testConfig(t), "derive", "--mnemonic", testMnemonic, "--count", "2")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "m/44'/1'/0'/0/0  "))
	assert.True(t, strings.HasPrefix(lines[1], "m/44'/1'/0'/0/1  "))
	assert.Contains(t, lines[0], " ldg1q")

	out, err = runCmd(t, testConfig(t), "derive")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "mnemonic: "))
}

func TestDeriveCommandRejectsPathIndex(t *testing.T) {
	for _, args := range [][]string{
		{"--coin-type", "-1"},
		{"--coin-type", "2147483648"},
		{"--account", "-5"},
		{"--account", "4294967296"},
	} {
		out, err := runCmd(t, testConfig(t), append([]string{"derive", "--mnemonic", testMnemonic}, args...)...)
		require.ErrorIs(t, err, crypto.ErrInvalidPath, args)
		assert.NotContains(t, out, "m/44'")
	}
}
