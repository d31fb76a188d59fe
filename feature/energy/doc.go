// Package energy derives energy quantities from model branches so they
// can be reconciled against source statistics.
//
// A strategy names the branch variables whose product yields energy
// (activity times intensity, or stock times mileage times fuel economy).
// A rule set maps statistics coordinates (sector, fuel) onto the model
// branches that supply them, with fractional weights for branches split
// across fuels.
package energy
