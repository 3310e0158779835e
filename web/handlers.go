package web

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/mogaika/anim_browser/pack"
	"github.com/mogaika/anim_browser/pack/anim"
	"github.com/mogaika/anim_browser/utils/gltfutils"
	"github.com/mogaika/anim_browser/vfs"
	"github.com/mogaika/anim_browser/webutils"
)

func getAnimation(file string) (*anim.Animation, error) {
	inst, err := pack.GetInstanceHandler(ServerDirectory, file)
	if err != nil {
		return nil, err
	}
	a, ok := inst.(*anim.Animation)
	if !ok {
		return nil, errors.Errorf("File %s is not an animation", file)
	}
	return a, nil
}

func getAnimationFrame(r *http.Request) (*anim.Animation, int, error) {
	vars := mux.Vars(r)
	a, err := getAnimation(vars["file"])
	if err != nil {
		return nil, 0, err
	}
	frame, err := strconv.Atoi(vars["frame"])
	if err != nil {
		return nil, 0, errors.Errorf("frame '%s' is not integer", vars["frame"])
	}
	if err := a.Pose.CheckFrame(frame); err != nil {
		return nil, 0, err
	}
	return a, frame, nil
}

func HandlerAjaxAnimList(w http.ResponseWriter, r *http.Request) {
	if files, err := vfs.DirectoryListExt(ServerDirectory, ".anim"); err != nil {
		webutils.WriteError(w, err)
	} else {
		webutils.WriteJson(w, files)
	}
}

func HandlerAjaxAnimFile(w http.ResponseWriter, r *http.Request) {
	file := mux.Vars(r)["file"]
	if a, err := getAnimation(file); err != nil {
		webutils.WriteError(w, err)
	} else {
		webutils.WriteJson(w, a.Marshal(file))
	}
}

func HandlerYamlAnimFile(w http.ResponseWriter, r *http.Request) {
	file := mux.Vars(r)["file"]
	if a, err := getAnimation(file); err != nil {
		webutils.WriteError(w, err)
	} else {
		webutils.WriteYamlFile(w, a.Marshal(file), file)
	}
}

func HandlerAjaxAnimFrame(w http.ResponseWriter, r *http.Request) {
	a, frame, err := getAnimationFrame(r)
	if err != nil {
		webutils.WriteError(w, err)
		return
	}
	if bones, err := a.Pose.MarshalFrame(frame, ServerRotation); err != nil {
		webutils.WriteError(w, err)
	} else {
		webutils.WriteJson(w, bones)
	}
}

func HandlerGLTFAnimFrame(w http.ResponseWriter, r *http.Request) {
	a, frame, err := getAnimationFrame(r)
	if err != nil {
		webutils.WriteError(w, err)
		return
	}
	file := mux.Vars(r)["file"]

	doc, err := a.Pose.ExportGLTFDefault(file, frame, ServerRotation)
	if err != nil {
		webutils.WriteError(w, errors.Wrapf(err, "Failed to export gltf"))
		return
	}
	var buf bytes.Buffer
	if err := gltfutils.ExportBinary(&buf, doc); err != nil {
		webutils.WriteError(w, errors.Wrapf(err, "Failed to encode gltf"))
		return
	}
	webutils.WriteFile(w, &buf, file+"-"+strconv.Itoa(frame)+".glb")
}

func HandlerDumpAnimFile(w http.ResponseWriter, r *http.Request) {
	file := mux.Vars(r)["file"]
	f, err := vfs.DirectoryGetFile(ServerDirectory, file)
	if err != nil {
		webutils.WriteError(w, err)
		return
	}

	if reader, err := vfs.OpenFileAndGetReader(f); err != nil {
		webutils.WriteError(w, err)
	} else {
		defer f.Close()
		webutils.WriteFile(w, reader, file)
	}
}
