package main

import "github.com/Faultbox/turtlemotion/pkg/math"

// headlessCamera records camera animation poses when there is no viewer.
type headlessCamera struct {
	pose     math.Pose
	disabled bool
}

func (c *headlessCamera) ApplyPose(p math.Pose) { c.pose = p }
func (c *headlessCamera) DisableOrbitControls() { c.disabled = true }
func (c *headlessCamera) EnableOrbitControls()  { c.disabled = false }
func (c *headlessCamera) Pose() math.Pose       { return c.pose }
