package pointcsv

import (
	"math"

	"gonum.org/v1/gonum/num/quat"

	"go.viam.com/rdk/spatialmath"
	"go.viam.com/rdk/utils"
)

// gimbalEpsilon is the |cos P| below which W and R cannot be separated.
const gimbalEpsilon = 1e-6

// WPR is an orientation as three fixed-axis rotations in degrees:
// W about X, then P about Y, then R about Z.
type WPR struct {
	W float64
	P float64
	R float64
}

// Orientation converts the angles into the host rotation representation.
// The fixed X-Y-Z sequence is the same rotation as Tait-Bryan z-y'-x''
// euler angles, so W, P and R map onto roll, pitch and yaw.
func (a WPR) Orientation() spatialmath.Orientation {
	return &spatialmath.EulerAngles{
		Roll:  utils.DegToRad(a.W),
		Pitch: utils.DegToRad(a.P),
		Yaw:   utils.DegToRad(a.R),
	}
}

// WPRFromOrientation is the inverse of WPR.Orientation, read from the
// rotation matrix R = Rz(R)·Ry(P)·Rx(W). At P = ±90 only W-R (P = 90) or
// W+R (P = -90) is defined; P is then reported as exactly ±90, R as 0 and
// the whole angle goes into W.
func WPRFromOrientation(o spatialmath.Orientation) WPR {
	if o == nil {
		return WPR{}
	}
	q := o.Quaternion()
	if n := quat.Abs(q); n > 0 {
		q = quat.Scale(1/n, q)
	}
	w, x, y, z := q.Real, q.Imag, q.Jmag, q.Kmag

	r00 := 1 - 2*(y*y+z*z)
	r01 := 2 * (x*y - w*z)
	r10 := 2 * (x*y + w*z)
	r11 := 1 - 2*(x*x+z*z)
	r20 := 2 * (x*z - w*y)
	r21 := 2 * (y*z + w*x)
	r22 := 1 - 2*(x*x+y*y)

	cosP := math.Hypot(r00, r10)
	if cosP < gimbalEpsilon {
		if r20 < 0 {
			return WPR{W: utils.RadToDeg(math.Atan2(r01, r11)), P: 90}
		}
		return WPR{W: utils.RadToDeg(math.Atan2(-r01, r11)), P: -90}
	}
	return WPR{
		W: utils.RadToDeg(math.Atan2(r21, r22)),
		P: utils.RadToDeg(math.Atan2(-r20, cosP)),
		R: utils.RadToDeg(math.Atan2(r10, r00)),
	}
}
