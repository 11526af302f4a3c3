//go:build linux

package badge

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeUevent(t *testing.T, root, node, hidID string) {
	t.Helper()
	dir := filepath.Join(root, node, "device")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	content := "DRIVER=hid-generic\nHID_ID=" + hidID + "\nHID_NAME=LSicroelectronics LS32 Custm HID\n"
	if err := os.WriteFile(filepath.Join(dir, "uevent"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestHIDRawTransport_List(t *testing.T) {
	root := t.TempDir()
	writeUevent(t, root, "hidraw3", "0003:00000416:00005020")
	writeUevent(t, root, "hidraw0", "0003:0000046D:0000C52B")
	writeUevent(t, root, "hidraw1", "0003:00000416:00005020")

	tr := NewHIDRawTransport()
	tr.SysfsRoot = root

	ids, err := tr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	want := []string{"/dev/hidraw1", "/dev/hidraw3"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("expected %v, got %v", want, ids)
	}
}

func TestHIDRawTransport_NoSysfs(t *testing.T) {
	tr := NewHIDRawTransport()
	tr.SysfsRoot = filepath.Join(t.TempDir(), "missing")

	ids, err := tr.List()
	if err != nil || len(ids) != 0 {
		t.Errorf("missing sysfs should mean no devices, got %v %v", ids, err)
	}
}

func TestReadHIDID_Malformed(t *testing.T) {
	root := t.TempDir()
	writeUevent(t, root, "hidraw0", "garbage")

	if _, _, err := readHIDID(filepath.Join(root, "hidraw0", "device", "uevent")); err == nil {
		t.Error("expected an error for a malformed HID_ID")
	}
}
