// Package session holds the state of one interactive photo editing session:
// the loaded image, its enhanced working copy, the preview geometry, and the
// two-point crop selection with a single level of undo.
//
// Crop state machine:
//
//	Idle --EnableCropMode--> Selecting
//	Selecting --RecordPoint (fewer than 2 points)--> Selecting
//	Selecting --CommitCrop (exactly 2 points)--> Idle
//	Selecting --DisableCropMode--> Idle
//	any --UndoCrop (undo slot filled)--> Idle
package session
