package geom

import (
	"math"
	"testing"
)

func TestMatrix4(t *testing.T) {
	const eps = 0.000001

	ident := NewMatrix4()
	v := NewVector3(1, 2, 3)
	if ident.ApplyTo(v).Sub(v).Len() > eps {
		t.Error("identity: ", ident.ApplyTo(v))
	}

	tr := NewTranslateMatrix4(10, 20, 30)
	if tr.ApplyTo(v).Sub(NewVector3(11, 22, 33)).Len() > eps {
		t.Error("translate: ", tr.ApplyTo(v))
	}

	sc := NewScaleMatrix4(2, 2, 2)
	if sc.ApplyTo(v).Sub(NewVector3(2, 4, 6)).Len() > eps {
		t.Error("scale: ", sc.ApplyTo(v))
	}

	// rotation matrix from quaternion should agree with quaternion rotation
	q := NewEuler(10*math.Pi/180, 20*math.Pi/180, 30*math.Pi/180, RotationOrderZXY).ToQuaternion()
	m := NewRotationMatrix4FromQuaternion(q)
	v1 := m.ApplyTo(v)
	v2 := q.ApplyTo(v)
	if v1.Sub(v2).Len() > eps {
		t.Error("rotation: ", v1, v2)
	}

	// Mul: translate then rotate
	m2 := tr.Mul(m)
	v3 := m2.ApplyTo(v)
	v4 := tr.ApplyTo(m.ApplyTo(v))
	if v3.Sub(v4).Len() > eps {
		t.Error("mul: ", v3, v4)
	}

	if *m.Transposed().Transposed() != *m {
		t.Error("transpose")
	}
}
