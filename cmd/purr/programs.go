package main

import (
	"context"
	"maps"
	"slices"

	"github.com/purrlang/purr/purr"
)

// registerPrograms installs the compiled-in programs on rt's namespace.
func registerPrograms(rt *purr.Runtime) error {
	loaders := map[string]purr.Loader{
		"main":    mainProgram(rt),
		"cats":    catsProgram,
		"kittens": kittensProgram(rt),
	}
	for _, key := range slices.Sorted(maps.Keys(loaders)) {
		if err := rt.AddModule(key, loaders[key]); err != nil {
			return err
		}
	}
	return nil
}

func arg(args []purr.Value, i int) purr.Value {
	if i < len(args) {
		return args[i]
	}
	return purr.Nothing
}

func catsProgram(context.Context) (*purr.YarnBall, error) {
	cat, err := purr.NewClowder("Cat", nil, map[string]purr.Method{
		"wake": func(self *purr.Instance, args []purr.Value) (purr.Value, error) {
			self.Set("name", arg(args, 0))
			self.Set("lives", purr.NewNumber(9))
			return purr.Nothing, nil
		},
		"speak": func(*purr.Instance, []purr.Value) (purr.Value, error) {
			return purr.NewString("meow"), nil
		},
		"greet": func(self *purr.Instance, _ []purr.Value) (purr.Value, error) {
			sound, err := self.Call("speak")
			if err != nil {
				return purr.Nothing, err
			}
			return purr.NewString(purr.Purrify(self.Get("name")) + " says " + sound.Text()), nil
		},
	})
	if err != nil {
		return nil, err
	}
	return purr.NewYarnBall("cats",
		purr.Const("Cat", purr.NewClowderValue(cat)),
		purr.Const("names", purr.ShelfOf(purr.NewString("jake"), purr.NewString("princess"))),
	), nil
}

func kittensProgram(rt *purr.Runtime) purr.Loader {
	return func(ctx context.Context) (*purr.YarnBall, error) {
		cats, err := rt.GetModule(ctx, "cats")
		if err != nil {
			return nil, err
		}
		catValue, err := cats.Get("Cat")
		if err != nil {
			return nil, err
		}
		cat, err := purr.EnsureClowder(catValue)
		if err != nil {
			return nil, err
		}
		kitten, err := purr.NewClowder("Kitten", cat, map[string]purr.Method{
			"wake": func(self *purr.Instance, args []purr.Value) (purr.Value, error) {
				parent, err := self.Outside()
				if err != nil {
					return purr.Nothing, err
				}
				if _, err := parent.Call("wake", args...); err != nil {
					return purr.Nothing, err
				}
				self.Set("tiny", purr.True)
				return purr.Nothing, nil
			},
			"speak": func(*purr.Instance, []purr.Value) (purr.Value, error) {
				return purr.NewString("mew"), nil
			},
		})
		if err != nil {
			return nil, err
		}
		return purr.NewYarnBall("kittens", purr.Const("Kitten", purr.NewClowderValue(kitten))), nil
	}
}

func mainProgram(rt *purr.Runtime) purr.Loader {
	return func(ctx context.Context) (*purr.YarnBall, error) {
		prelude, err := rt.GetModule(ctx, purr.PreludeKey)
		if err != nil {
			return nil, err
		}
		cats, err := rt.GetModule(ctx, "cats")
		if err != nil {
			return nil, err
		}
		kittens, err := rt.GetModule(ctx, "kittens")
		if err != nil {
			return nil, err
		}
		meow := func(args ...purr.Value) error {
			_, err := prelude.Call("meow", args...)
			return err
		}

		kittenValue, err := kittens.Get("Kitten")
		if err != nil {
			return nil, err
		}
		kitten, err := purr.EnsureClowder(kittenValue)
		if err != nil {
			return nil, err
		}
		namesValue, err := cats.Get("names")
		if err != nil {
			return nil, err
		}
		names, err := purr.EnsureShelf(namesValue)
		if err != nil {
			return nil, err
		}

		for name := range purr.Values(names) {
			k, err := kitten.Wake(name)
			if err != nil {
				return nil, err
			}
			own, err := k.Call("greet")
			if err != nil {
				return nil, err
			}
			parent, err := k.Outside()
			if err != nil {
				return nil, err
			}
			inherited, err := parent.Call("greet")
			if err != nil {
				return nil, err
			}
			if err := meow(own); err != nil {
				return nil, err
			}
			if err := meow(inherited); err != nil {
				return nil, err
			}
		}

		message := purr.BoxOf(
			purr.Pair{Key: "cats", Value: namesValue},
			purr.Pair{Key: "message", Value: purr.NewString("hello world! :)")},
		)
		encoded, err := prelude.Call("encode", message)
		if err != nil {
			return nil, err
		}
		if err := meow(encoded); err != nil {
			return nil, err
		}

		if err := meow(purr.NewString("what's your name?")); err != nil {
			return nil, err
		}
		visitor, err := prelude.Call("listen")
		if err != nil {
			return nil, err
		}
		if visitor.IsNothing() || visitor.Text() == "" {
			visitor = purr.NewString("stranger")
		}
		if err := meow(purr.NewString("nice to meet you,"), visitor); err != nil {
			return nil, err
		}

		return purr.NewYarnBall("main",
			purr.Const("message", message),
			purr.Const("visitor", visitor),
		), nil
	}
}
