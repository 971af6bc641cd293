package ampemail

// Ptr returns a pointer to v. It keeps literal construction of models with
// optional fields readable:
//
//	product := ampemail.Product{
//		Name:  ampemail.Ptr("Classic Tee"),
//		Price: ampemail.Ptr(29.90),
//	}
func Ptr[T any](v T) *T { return &v }
