package testing

import (
	"path/filepath"
	"testing"

	cryptocodec "github.com/cosmos/cosmos-sdk/crypto/codec"
	cryptotypes "github.com/cosmos/cosmos-sdk/crypto/types"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/privval"
)

// loadValidatorPubKey loads the consensus pub key of a node from disk
func loadValidatorPubKey(t *testing.T, keyFile string) cryptotypes.PubKey {
	filePV := privval.LoadFilePVEmptyState(keyFile, "")
	pubKey, err := filePV.GetPubKey()
	require.NoError(t, err)
	valPubKey, err := cryptocodec.FromTmPubKeyInterface(pubKey)
	require.NoError(t, err)
	return valPubKey
}

// loadValidatorPubKeyForNode loads the consensus pub key of the n-th cluster node
func loadValidatorPubKeyForNode(t *testing.T, sut *SystemUnderTest, nodeNumber int) cryptotypes.PubKey {
	return loadValidatorPubKey(t, filepath.Join(workDir, sut.nodePath(nodeNumber), "config", "priv_validator_key.json"))
}
