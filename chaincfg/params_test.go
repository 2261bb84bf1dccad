package chaincfg

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetworkParams(t *testing.T) {
	tests := []struct {
		name     string
		hrp      string
		interval time.Duration
		bits     uint32
	}{
		{"main", "ldg", 4 * time.Second, 0x1d00ffff},
		{"test", "tldg", 4 * time.Second, 0x1d00ffff},
		{"regtest", "ldgrt", time.Second, 0x207fffff},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params, err := ParamsForNetwork(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.name, params.Name)
			assert.Equal(t, tt.hrp, params.Bech32HRP)
			assert.Equal(t, tt.interval, params.BlockStakeTimestampInterval)
			assert.Equal(t, tt.bits, params.Genesis.Bits)
			assert.NotEmpty(t, params.Genesis.Funds)

			supply, err := params.InitialSupply()
			require.NoError(t, err)
			assert.Positive(t, supply)
		})
	}
}

func TestParamsForNetworkUnknown(t *testing.T) {
	_, err := ParamsForNetwork("simnet")
	require.ErrorIs(t, err, ErrUnknownNetwork)
}

func TestParamsForNetworkReturnsCopy(t *testing.T) {
	params, err := ParamsForNetwork("regtest")
	require.NoError(t, err)

	params.Genesis.Funds[0].Amount = 1
	params.PowLimit.SetInt64(1)

	assert.Equal(t, 10000*Coin, RegressionNetParams.Genesis.Funds[0].Amount)
	assert.NotEqual(t, int64(1), RegressionNetParams.PowLimit.Int64())
}

func TestNetworkNames(t *testing.T) {
	assert.Equal(t, []string{"main", "test", "regtest"}, NetworkNames())
}

func TestInitialSupply(t *testing.T) {
	params := RegressionNetParams.Copy()
	params.Genesis.Funds = []FundSpec{{Amount: 3}, {Amount: 4}}

	supply, err := params.InitialSupply()
	require.NoError(t, err)
	assert.Equal(t, int64(7), supply)

	params.Genesis.Funds = append(params.Genesis.Funds, FundSpec{Amount: 0})
	_, err = params.InitialSupply()
	require.ErrorIs(t, err, ErrNonPositiveFund)

	params.Genesis.Funds = []FundSpec{{Amount: params.MaxMoney}, {Amount: 1}}
	_, err = params.InitialSupply()
	require.ErrorIs(t, err, ErrExceedsMaxMoney)
}

const regtestGenesisTOML = `
network = "regtest"
version = 2
time = 2025-10-01T00:00:03Z
bits = 0x207fffff

[[funds]]
amount = 100
pub_key_hash = "3d17776e24696a7e4986a8af75591e487d1cd5c4"

[[funds]]
amount = 200
script_hash = "01b86229f60152d775b4b73434dfea1513bf54c68bd6df71c8d665e069535e74"
`

func TestDecodeGenesis(t *testing.T) {
	params, err := DecodeGenesis(strings.NewReader(regtestGenesisTOML))
	require.NoError(t, err)

	assert.Equal(t, "regtest", params.Name)
	assert.Equal(t, int32(2), params.Genesis.Version)
	assert.Equal(t, uint32(0x207fffff), params.Genesis.Bits)
	assert.Equal(t, int64(1759276803), params.Genesis.Time.Unix())
	assert.Nil(t, params.Genesis.Difficulty)
	require.Len(t, params.Genesis.Funds, 2)
	assert.Equal(t, int64(100), params.Genesis.Funds[0].Amount)
	assert.Equal(t, "3d17776e24696a7e4986a8af75591e487d1cd5c4", params.Genesis.Funds[0].PubKeyHash)
	assert.Equal(t, int64(200), params.Genesis.Funds[1].Amount)
	assert.NotEmpty(t, params.Genesis.Funds[1].ScriptHash)

	// The registered network is left untouched.
	assert.Equal(t, int32(4), RegressionNetParams.Genesis.Version)
}

func TestDecodeGenesisDifficulty(t *testing.T) {
	doc := `
network = "main"
time = 2026-01-01T00:00:00Z
difficulty = "0x00000000ffff0000000000000000000000000000000000000000000000000000"

[[funds]]
amount = 1
pub_key_hash = "7c5263ee9767454235679b96d15265c070786c83"
`
	params, err := DecodeGenesis(strings.NewReader(doc))
	require.NoError(t, err)
	require.NotNil(t, params.Genesis.Difficulty)
	assert.Equal(t, 224, params.Genesis.Difficulty.BitLen())
}

func TestDecodeGenesisRejects(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr error
	}{
		{
			name:    "unknown network",
			doc:     "network = \"simnet\"\ntime = 2026-01-01T00:00:00Z\nbits = 1\n",
			wantErr: ErrInvalidGenesisFile,
		},
		{
			name:    "missing time",
			doc:     "network = \"main\"\nbits = 1\n",
			wantErr: ErrInvalidGenesisFile,
		},
		{
			name:    "bits and difficulty",
			doc:     "network = \"main\"\ntime = 2026-01-01T00:00:00Z\nbits = 1\ndifficulty = \"ff\"\n",
			wantErr: ErrInvalidGenesisFile,
		},
		{
			name:    "zero amount",
			doc:     "network = \"main\"\ntime = 2026-01-01T00:00:00Z\nbits = 1\n[[funds]]\namount = 0\npub_key_hash = \"aa\"\n",
			wantErr: ErrInvalidGenesisFile,
		},
		{
			name:    "no destination",
			doc:     "network = \"main\"\ntime = 2026-01-01T00:00:00Z\nbits = 1\n[[funds]]\namount = 5\n",
			wantErr: ErrInvalidGenesisFile,
		},
		{
			name:    "two destinations",
			doc:     "network = \"main\"\ntime = 2026-01-01T00:00:00Z\nbits = 1\n[[funds]]\namount = 5\npub_key_hash = \"aa\"\nscript_hash = \"bb\"\n",
			wantErr: ErrInvalidGenesisFile,
		},
		{
			name:    "unknown key",
			doc:     "network = \"main\"\ntime = 2026-01-01T00:00:00Z\nbits = 1\nnonce = 3\n",
			wantErr: ErrUnknownGenesisKeys,
		},
		{
			name:    "malformed toml",
			doc:     "network = ",
			wantErr: ErrInvalidGenesisFile,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeGenesis(strings.NewReader(tt.doc))
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func genesisDocWithTime(ts string) string {
	return "network = \"regtest\"\ntime = " + ts + "\nbits = 0x207fffff\n" +
		"[[funds]]\namount = 100\npub_key_hash = \"3d17776e24696a7e4986a8af75591e487d1cd5c4\"\n"
}

func TestDecodeGenesisTimeIndependentOfHostZone(t *testing.T) {
	local := time.Local
	t.Cleanup(func() { time.Local = local })

	zones := []*time.Location{time.UTC, time.FixedZone("JST", 9*3600), time.FixedZone("EST", -5*3600)}

	for _, loc := range zones {
		t.Run(loc.String(), func(t *testing.T) {
			time.Local = loc

			for _, ts := range []string{"2025-10-01T00:00:03", "2025-10-01"} {
				_, err := DecodeGenesis(strings.NewReader(genesisDocWithTime(ts)))
				require.ErrorIs(t, err, ErrInvalidGenesisFile, ts)
				assert.Contains(t, err.Error(), "offset")
			}

			for _, ts := range []string{"2025-10-01T00:00:03Z", "2025-10-01T09:00:03+09:00", "2025-09-30T19:00:03-05:00"} {
				params, err := DecodeGenesis(strings.NewReader(genesisDocWithTime(ts)))
				require.NoError(t, err, ts)
				assert.Equal(t, int64(1759276803), params.Genesis.Time.Unix(), ts)
				assert.Equal(t, time.UTC, params.Genesis.Time.Location())
			}
		})
	}
}

func TestLoadGenesisFileMissing(t *testing.T) {
	_, err := LoadGenesisFile(t.TempDir() + "/missing.toml")
	require.Error(t, err)
}
