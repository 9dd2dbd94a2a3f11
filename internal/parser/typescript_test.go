package parser

import (
	"context"
	"reflect"
	"testing"
)

const controller = `import { Request, Response } from 'express';

export class PaymentGatewayController {
  async initiate(req: Request, res: Response): Promise<void> {
    res.json({ ok: true });
  }

  async processCashPayment(req: Request, res: Response): Promise<void> {
    res.json({ paid: true });
  }
}

const paymentGatewayController = new PaymentGatewayController();
export default paymentGatewayController;
`

func parseTypeScript(t *testing.T, content string, tsx bool) *Tree {
	t.Helper()
	tree, err := Parse(context.Background(), []byte(content), tsx)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return tree
}

func TestClassRows(t *testing.T) {
	tree := parseTypeScript(t, controller, false)

	if tree.HasErrors() {
		t.Fatalf("expected clean parse")
	}

	tests := []struct {
		name string
		got  []int
		want []int
	}{
		{
			name: "class_open",
			got:  tree.ClassOpenRows("PaymentGatewayController"),
			want: []int{2},
		},
		{
			name: "class_close",
			got:  tree.ClassCloseRows("PaymentGatewayController"),
			want: []int{10},
		},
		{
			name: "unknown_class",
			got:  tree.ClassCloseRows("OrderController"),
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !reflect.DeepEqual(tt.got, tt.want) {
				t.Errorf("got rows %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestMethodRows(t *testing.T) {
	tests := []struct {
		name    string
		content string
		method  string
		tsx     bool
		want    []int
	}{
		{
			name:    "async_method",
			content: controller,
			method:  "processCashPayment",
			want:    []int{7},
		},
		{
			name:    "first_method",
			content: controller,
			method:  "initiate",
			want:    []int{3},
		},
		{
			name:    "missing_method",
			content: controller,
			method:  "refund",
			want:    nil,
		},
		{
			name: "static_method",
			content: `class Registry {
  static create() {
    return new Registry();
  }
}`,
			method: "create",
			want:   []int{1},
		},
		{
			name: "tsx_component",
			content: `export class Widget {
  render() {
    return <div className="widget" />;
  }
}`,
			method: "render",
			tsx:    true,
			want:   []int{1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := parseTypeScript(t, tt.content, tt.tsx)
			got := tree.MethodRows(tt.method)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("MethodRows(%q) = %v, want %v", tt.method, got, tt.want)
			}
		})
	}
}

func TestParseMultipleClasses(t *testing.T) {
	content := `class A {
}
class B {
  run() {}
}
class A2 {
}`
	tree := parseTypeScript(t, content, false)

	if got := tree.ClassOpenRows("B"); !reflect.DeepEqual(got, []int{2}) {
		t.Errorf("ClassOpenRows(B) = %v, want [2]", got)
	}
	if got := tree.ClassCloseRows("B"); !reflect.DeepEqual(got, []int{4}) {
		t.Errorf("ClassCloseRows(B) = %v, want [4]", got)
	}
	if got := tree.ClassCloseRows("A"); !reflect.DeepEqual(got, []int{1}) {
		t.Errorf("ClassCloseRows(A) = %v, want [1]", got)
	}
}
