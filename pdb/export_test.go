package pdb

// Export some internal functions for testing

var OldOrMmcif = oldOrMmcif
var BaseID = baseID

const (
	Old_fmt   = old_fmt
	Mmcif_fmt = mmcif_fmt
)
